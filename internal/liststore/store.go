// Package liststore owns the in-memory checklist and commits every mutation
// through a persistence hook.
package liststore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/idilsaglam/listlist/internal/codec"
	"github.com/idilsaglam/listlist/internal/ids"
	"github.com/idilsaglam/listlist/internal/model"
	"github.com/idilsaglam/listlist/internal/undo"
)

// ErrIndexOutOfRange is returned by Reorder for indices outside [0, len).
var ErrIndexOutOfRange = errors.New("index out of range")

// Persister is the durable side of the store. Load is called once by Open;
// Save is called after every committed mutation.
type Persister interface {
	Load(ctx context.Context) (model.List, error)
	Save(ctx context.Context, list model.List) error
}

// Store serializes all reads and writes of the list behind one mutex.
// Every mutation returns a copy of the resulting list; callers never share
// the store's backing slice.
//
// The undo snapshot only survives until the next change: any mutation that
// is not itself a delete discards it, so undo can never drop items added or
// edited after the delete.
type Store struct {
	mu     sync.Mutex
	items  model.List
	p      Persister
	undo   *undo.Buffer
	nextID func() string
	log    *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

func WithIDs(next func() string) Option { return func(s *Store) { s.nextID = next } }

// WithUndo lets the caller own the undo buffer, e.g. to persist it.
func WithUndo(b *undo.Buffer) Option { return func(s *Store) { s.undo = b } }

// New returns an empty store. p may be nil for a purely in-memory list.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		items:  model.List{},
		p:      p,
		undo:   &undo.Buffer{},
		nextID: ids.Next,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open creates a store and loads the persisted list once.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := New(p, opts...)
	if p == nil {
		return s, nil
	}
	items, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load list: %w", err)
	}
	if items != nil {
		s.items = items.Clone()
	}
	s.log.Debug("list loaded", "items", len(s.items))
	return s, nil
}

// Items returns a copy of the current list.
func (s *Store) Items() model.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

// Len is the number of items in the list.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Add appends one unchecked item per line of raw. The whole input is trimmed
// and one trailing '\r' is dropped from each line. Inner blank lines still
// become (empty) items.
func (s *Store) Add(ctx context.Context, raw string) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Clone()
	raw = strings.TrimSpace(raw)
	if raw != "" {
		s.undo.Discard()
		for _, line := range strings.Split(raw, "\n") {
			next = append(next, model.Item{
				ID:   s.nextID(),
				Text: strings.TrimSuffix(line, "\r"),
			})
		}
	}
	return s.commit(ctx, "add", next)
}

// ToggleChecked flips the checked flag of the item with the given id.
func (s *Store) ToggleChecked(ctx context.Context, id string) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Clone()
	if i := s.find(next, id, "toggle"); i >= 0 {
		s.undo.Discard()
		next[i].Checked = !next[i].Checked
	}
	return s.commit(ctx, "toggle", next)
}

// Edit replaces the text of the item with the given id.
func (s *Store) Edit(ctx context.Context, id, text string) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Clone()
	if i := s.find(next, id, "edit"); i >= 0 {
		s.undo.Discard()
		next[i].Text = text
	}
	return s.commit(ctx, "edit", next)
}

// Remove deletes the item with the given id.
func (s *Store) Remove(ctx context.Context, id string) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Clone()
	if i := s.find(next, id, "remove"); i >= 0 {
		s.undo.Capture(s.items)
		next = append(next[:i], next[i+1:]...)
	}
	return s.commit(ctx, "remove", next)
}

// RemoveWhereChecked deletes every checked item.
func (s *Store) RemoveWhereChecked(ctx context.Context) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo.Capture(s.items)
	next := make(model.List, 0, len(s.items))
	for _, it := range s.items {
		if !it.Checked {
			next = append(next, it)
		}
	}
	return s.commit(ctx, "remove checked", next)
}

// RemoveAll empties the list.
func (s *Store) RemoveAll(ctx context.Context) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo.Capture(s.items)
	return s.commit(ctx, "remove all", model.List{})
}

// Reorder moves the item at from to to, shifting the items in between.
func (s *Store) Reorder(ctx context.Context, from, to int) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return s.items.Clone(), fmt.Errorf("reorder %d -> %d with %d items: %w", from, to, n, ErrIndexOutOfRange)
	}
	s.undo.Discard()
	next := s.items.Clone()
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append(model.List{moved}, next[to:]...)...)
	return s.commit(ctx, "reorder", next)
}

// Replace overwrites the whole list.
func (s *Store) Replace(ctx context.Context, list model.List) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo.Discard()
	return s.commit(ctx, "replace", list.Clone())
}

// Append adds list after the current items, keeping both orders.
func (s *Store) Append(ctx context.Context, list model.List) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo.Discard()
	next := make(model.List, 0, len(s.items)+len(list))
	next = append(next, s.items...)
	next = append(next, list...)
	return s.commit(ctx, "append", next)
}

// Commit saves the current list again without changing it or the undo
// snapshot.
func (s *Store) Commit(ctx context.Context) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "commit", s.items.Clone())
}

// Undo restores the snapshot taken before the last destructive operation.
// Without a snapshot it returns the current list and commits nothing.
func (s *Store) Undo(ctx context.Context) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.undo.Take()
	if !ok {
		return s.items.Clone(), nil
	}
	return s.commit(ctx, "undo", snap)
}

// CanUndo reports whether a snapshot is pending.
func (s *Store) CanUndo() bool { return s.undo.Pending() }

// DeletedCount is how many items the pending snapshot would bring back.
func (s *Store) DeletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.undo.Pending() {
		return 0
	}
	if n := s.undo.Len() - len(s.items); n > 0 {
		return n
	}
	return 0
}

// ShareLink returns origin+path, with an import query when the list is not empty.
func (s *Store) ShareLink(origin, path string) string {
	return ShareLink(origin, path, s.Items())
}

// ShareLink builds the link for an arbitrary list.
func ShareLink(origin, path string, list model.List) string {
	base := strings.TrimRight(origin, "/") + path
	if len(list) == 0 {
		return base
	}
	return base + "?" + url.Values{"import": {codec.Encode(list)}}.Encode()
}

func (s *Store) find(list model.List, id, op string) int {
	i := list.Index(id)
	if i < 0 {
		// Unknown ids are ignored; the list is committed unchanged.
		s.log.Debug("item not found, ignoring", "op", op, "id", id)
	}
	return i
}

// commit installs next as the current list and saves it. On a save failure
// the in-memory list stays authoritative and the error is returned.
func (s *Store) commit(ctx context.Context, op string, next model.List) (model.List, error) {
	s.items = next
	s.log.Debug("commit", "op", op, "items", len(next))
	if s.p == nil {
		return next.Clone(), nil
	}
	if err := s.p.Save(ctx, next.Clone()); err != nil {
		s.log.Error("save failed", "op", op, "err", err)
		return next.Clone(), fmt.Errorf("save list: %w", err)
	}
	return next.Clone(), nil
}
