package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_NoFileDiscards(t *testing.T) {
	l, closeFn, err := New("", "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("dropped")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listlist.log")
	l, closeFn, err := New(path, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown", "items", 3)
	closeFn()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"items":3`) {
		t.Fatalf("expected JSON warn line, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, _ := ParseLevel("DEBUG"); lvl != slog.LevelDebug {
		t.Fatalf("expected debug, got %v", lvl)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
