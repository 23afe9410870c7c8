package ids

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestNext_DefaultLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := Next()
		if got, want := len(id), DefaultLength; got != want {
			t.Fatalf("expected id len %d, got %d (%q)", want, got, id)
		}
		for _, r := range id {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("unexpected rune %q in id %q", r, id)
			}
		}
	}
}

func TestGenerator_CustomLength(t *testing.T) {
	id := Generator{Length: 4}.Next()
	if len(id) != 4 {
		t.Fatalf("expected 4 chars, got %q", id)
	}
}

func TestGenerator_SeededIsDeterministic(t *testing.T) {
	a := Generator{Rand: rand.New(rand.NewPCG(1, 2))}
	b := Generator{Rand: rand.New(rand.NewPCG(1, 2))}
	for i := 0; i < 5; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("seeded generators diverged: %q vs %q", x, y)
		}
	}
}

func TestNext_DistinctInPractice(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := Next()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
