package model

import "fmt"

// Item is one checklist entry. ID is assigned once at creation and never
// recomputed; only Text and Checked change over an item's lifetime.
type Item struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// List is the ordered collection of items. Order is user-controlled.
type List []Item

// Clone returns a copy that shares no backing array with l.
// A nil list clones to an empty, non-nil list so it marshals as [].
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the item with the given id, or -1.
func (l List) Index(id string) int {
	for i, it := range l {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Texts is a small convenience for tests and rendering.
func (l List) Texts() []string {
	out := make([]string, 0, len(l))
	for _, it := range l {
		out = append(out, it.Text)
	}
	return out
}

// Stats counts checked and unchecked items.
func (l List) Stats() (checked, pending int) {
	for _, it := range l {
		if it.Checked {
			checked++
		} else {
			pending++
		}
	}
	return
}

// AnyChecked reports whether at least one item is checked.
func (l List) AnyChecked() bool {
	for _, it := range l {
		if it.Checked {
			return true
		}
	}
	return false
}

// Plural renders a count of items, e.g. "1 item" or "3 items".
func Plural(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
