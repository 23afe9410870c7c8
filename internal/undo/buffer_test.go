package undo

import (
	"reflect"
	"testing"

	"github.com/idilsaglam/listlist/internal/model"
)

func TestTake_EmptyBuffer(t *testing.T) {
	var b Buffer
	if _, ok := b.Take(); ok {
		t.Fatalf("expected no snapshot")
	}
	if b.Pending() {
		t.Fatalf("expected nothing pending")
	}
}

func TestCapture_TakeOnce(t *testing.T) {
	var b Buffer
	l := model.List{{ID: "a", Text: "A"}, {ID: "b", Text: "B", Checked: true}}
	b.Capture(l)
	if !b.Pending() || b.Len() != 2 {
		t.Fatalf("expected pending snapshot of 2, got pending=%v len=%d", b.Pending(), b.Len())
	}
	got, ok := b.Take()
	if !ok || !reflect.DeepEqual(got, l) {
		t.Fatalf("unexpected snapshot: ok=%v %+v", ok, got)
	}
	if _, ok := b.Take(); ok {
		t.Fatalf("snapshot should be cleared after Take")
	}
}

func TestCapture_CopiesInput(t *testing.T) {
	var b Buffer
	l := model.List{{ID: "a", Text: "A"}}
	b.Capture(l)
	l[0].Text = "mutated"
	got, _ := b.Peek()
	if got[0].Text != "A" {
		t.Fatalf("snapshot aliased caller's list: %+v", got)
	}
}

func TestCapture_OverwritesPrevious(t *testing.T) {
	var b Buffer
	b.Capture(model.List{{ID: "a"}, {ID: "b"}})
	b.Capture(model.List{{ID: "c"}})
	got, _ := b.Take()
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected latest snapshot only, got %+v", got)
	}
}

func TestCapture_EmptyListIsStillPending(t *testing.T) {
	var b Buffer
	b.Capture(nil)
	got, ok := b.Take()
	if !ok || got == nil || len(got) != 0 {
		t.Fatalf("expected empty pending snapshot, got ok=%v %#v", ok, got)
	}
}

func TestDiscard(t *testing.T) {
	var b Buffer
	b.Capture(model.List{{ID: "a"}})
	b.Discard()
	if b.Pending() {
		t.Fatalf("expected discard to clear snapshot")
	}
}
