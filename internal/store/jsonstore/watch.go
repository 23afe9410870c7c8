package jsonstore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceWindow is how long a key's file must be quiet before onChange fires.
var DebounceWindow = 300 * time.Millisecond

// Watch calls onChange whenever the file for key is written or replaced by
// another process. It blocks until ctx is done. The directory is watched
// rather than the file, since Set replaces the file by rename.
func (s *Store) Watch(ctx context.Context, key string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.Dir, err)
	}

	target := filepath.Clean(s.Path(key))
	var lastEvent time.Time
	pending := false
	ticker := time.NewTicker(DebounceWindow / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				pending = true
				lastEvent = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= DebounceWindow {
				pending = false
				onChange()
			}
		}
	}
}
