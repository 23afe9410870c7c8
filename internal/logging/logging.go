// Package logging builds the process logger. Logging is off unless a log
// file is configured, so diagnostics never mix with TUI or CLI output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON logger writing to path, or a discarding logger when
// path is empty. The returned close func is always safe to call.
func New(path, level string) (*slog.Logger, func() error, error) {
	nop := func() error { return nil }
	if path == "" {
		return Discard(), nop, nil
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return Discard(), nop, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), nop, fmt.Errorf("open log file: %w", err)
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	return l, f.Close, nil
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
