// Package jsonstore is a file-backed KV: one human-readable JSON file per key
// inside a data directory. No locking; fine for a local single-user tool.
package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps each key in <Dir>/<key>.json.
type Store struct {
	Dir string
}

func New(dir string) *Store { return &Store{Dir: dir} }

// Path is the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.Dir, fileName(key))
}

func fileName(key string) string {
	key = strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return key + ".json"
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

// Set writes through a temp file and rename so a crash never leaves a
// half-written list behind.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	p := s.Path(key)
	tmp, err := os.CreateTemp(s.Dir, "."+fileName(key)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.Path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
