// Package store persists the list through a small key-value abstraction,
// the way a browser keeps it in local storage under one key.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/idilsaglam/listlist/internal/model"
)

const (
	// ListKey holds the list as a JSON array of {id,text,checked}.
	ListKey = "list"
	// UndoKey holds the pending undo snapshot, if any.
	UndoKey = "list.undo"
)

// KV is a durable string-keyed byte store. Get reports found=false for a
// missing key rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hook adapts a KV key to liststore.Persister.
type Hook struct {
	KV  KV
	Key string
}

func NewHook(kv KV, key string) *Hook { return &Hook{KV: kv, Key: key} }

// Load returns the stored list. Absent and non-array values load as empty.
func (h *Hook) Load(ctx context.Context) (model.List, error) {
	b, found, err := h.KV.Get(ctx, h.Key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", h.Key, err)
	}
	if !found {
		return model.List{}, nil
	}
	return DecodeList(b)
}

// Exists reports whether anything is stored under the key.
func (h *Hook) Exists(ctx context.Context) (bool, error) {
	_, found, err := h.KV.Get(ctx, h.Key)
	return found, err
}

func (h *Hook) Save(ctx context.Context, list model.List) error {
	b, err := EncodeList(list)
	if err != nil {
		return err
	}
	if err := h.KV.Set(ctx, h.Key, b); err != nil {
		return fmt.Errorf("save %s: %w", h.Key, err)
	}
	return nil
}

func (h *Hook) Clear(ctx context.Context) error {
	if err := h.KV.Delete(ctx, h.Key); err != nil {
		return fmt.Errorf("clear %s: %w", h.Key, err)
	}
	return nil
}

// EncodeList renders list as an indented JSON array; nil becomes [].
func EncodeList(list model.List) ([]byte, error) {
	if list == nil {
		list = model.List{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeList parses a stored value. Anything that is not a JSON array
// (empty, null, an object, a string) is an empty list; a malformed array is
// an error.
func DecodeList(b []byte) (model.List, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return model.List{}, nil
	}
	var items model.List
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = model.List{}
	}
	return items, nil
}

// Memory is an in-process KV, used for the "memory" backend and tests.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory { return &Memory{data: map[string][]byte{}} }

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = bytes.Clone(value)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
