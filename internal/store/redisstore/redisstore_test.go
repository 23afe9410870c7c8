package redisstore

import (
	"context"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/idilsaglam/listlist/internal/model"
	"github.com/idilsaglam/listlist/internal/store"
)

func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	st, err := New("redis://"+s.Addr(), "")
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return st, s
}

func TestNew_Ping(t *testing.T) {
	st, _ := setupTestRedis(t)
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNew_BadURL(t *testing.T) {
	if _, err := New("not a url", ""); err == nil {
		t.Fatalf("expected error for bad url")
	}
}

func TestGet_Missing(t *testing.T) {
	st, _ := setupTestRedis(t)
	defer st.Close()
	_, found, err := st.Get(context.Background(), "list")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected missing key")
	}
}

func TestSet_UsesPrefix(t *testing.T) {
	st, mr := setupTestRedis(t)
	defer st.Close()
	if err := st.Set(context.Background(), "list", []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := mr.Get(DefaultPrefix + "list")
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if got != "[]" {
		t.Errorf("expected [] under prefixed key, got %q", got)
	}
}

func TestHook_RoundTripAndDelete(t *testing.T) {
	st, _ := setupTestRedis(t)
	defer st.Close()
	ctx := context.Background()
	h := store.NewHook(st, store.ListKey)

	want := model.List{{ID: "a", Text: "A", Checked: true}}
	if err := h.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := h.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = h.Load(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty list after clear, got %+v", got)
	}
}

func TestGet_NonArrayValueLoadsEmpty(t *testing.T) {
	st, mr := setupTestRedis(t)
	defer st.Close()
	mr.Set(DefaultPrefix+"list", `{"not":"an array"}`)
	got, err := store.NewHook(st, store.ListKey).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}
