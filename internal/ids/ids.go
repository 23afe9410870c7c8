// Package ids generates short opaque identifiers for list items.
package ids

import (
	"math/rand/v2"
	"strings"
)

// Alphabet is the 62-character set identifiers are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength gives 62^10 (~8e17) possible ids; collisions within one
// list are treated as negligible and never checked.
const DefaultLength = 10

// Generator draws identifiers from a non-cryptographic source.
type Generator struct {
	Length int
	Rand   *rand.Rand // nil uses the global source
}

// Next returns a fresh identifier.
func (g Generator) Next() string {
	n := g.Length
	if n <= 0 {
		n = DefaultLength
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		var k int
		if g.Rand != nil {
			k = g.Rand.IntN(len(Alphabet))
		} else {
			k = rand.IntN(len(Alphabet))
		}
		b.WriteByte(Alphabet[k])
	}
	return b.String()
}

// Next returns a DefaultLength identifier from the global source.
func Next() string { return Generator{}.Next() }
