package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/listlist/internal/model"
)

func TestProgressBar(t *testing.T) {
	got := ProgressBar(1, 2, 10)
	if !strings.HasPrefix(got, strings.Repeat("█", 5)+strings.Repeat("░", 5)) || !strings.HasSuffix(got, " 50%") {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := ProgressBar(0, 0, 1); !strings.HasSuffix(got, "  0%") {
		t.Fatalf("unexpected empty bar %q", got)
	}
}

func TestItemLine_MonoTheme(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	if got := ItemLine(0, model.Item{Text: "Buy milk"}, 80); !strings.Contains(got, " 1. [ ] Buy milk") {
		t.Fatalf("unexpected line %q", got)
	}
	if got := ItemLine(1, model.Item{Text: "Walk dog", Checked: true}, 80); !strings.Contains(got, " 2. [x] Walk dog") {
		t.Fatalf("unexpected line %q", got)
	}
	if got := ItemLine(0, model.Item{Text: strings.Repeat("a", 20)}, 10); !strings.HasSuffix(got, "aaaaaaa...") {
		t.Fatalf("expected truncation, got %q", got)
	}
}

func TestOKFail(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	if got := buf.String(); !strings.Contains(got, "x added") || !strings.Contains(got, "✖ boom") {
		t.Fatalf("unexpected output %q", got)
	}
}
