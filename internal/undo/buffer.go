// Package undo keeps a single snapshot of the list taken right before a
// destructive operation, so that operation can be reversed once.
package undo

import (
	"sync"

	"github.com/idilsaglam/listlist/internal/model"
)

// Buffer holds at most one snapshot. A new Capture overwrites the previous
// one; there is no undo history.
type Buffer struct {
	mu       sync.Mutex
	snapshot model.List
	pending  bool
}

// Capture stores a copy of list as the pending snapshot.
func (b *Buffer) Capture(list model.List) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = list.Clone()
	b.pending = true
}

// Take returns the pending snapshot and clears it.
// ok is false when nothing was captured.
func (b *Buffer) Take() (list model.List, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return nil, false
	}
	list, b.snapshot, b.pending = b.snapshot, nil, false
	return list, true
}

// Peek returns a copy of the pending snapshot without clearing it.
func (b *Buffer) Peek() (model.List, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return nil, false
	}
	return b.snapshot.Clone(), true
}

// Pending reports whether a snapshot is waiting to be restored.
func (b *Buffer) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Len is the number of items in the pending snapshot, or 0.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.snapshot)
}

// Discard drops the pending snapshot.
func (b *Buffer) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot, b.pending = nil, false
}
