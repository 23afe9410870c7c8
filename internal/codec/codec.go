// Package codec turns a list into a compact URL-safe share string and back.
//
// Wire format, before the base64 step:
//
//	Make to do list1|Realize you've already accomplished 2 things1|Reward yourself with nap0
//
// Each token is the item text followed by a one-char checked flag ('1' or '0').
// Tokens are joined with '|'. Because '|' may appear inside text, only a flag
// digit immediately followed by '|' marks a token boundary. Text that itself
// contains "0|" or "1|" cannot round-trip.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/idilsaglam/listlist/internal/ids"
	"github.com/idilsaglam/listlist/internal/model"
)

const (
	separator = '|'
	flagOn    = '1'
	flagOff   = '0'
)

// ErrDecode is matched by every error Decode returns.
var ErrDecode = errors.New("malformed share string")

// DecodeError describes why a share string was rejected.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode share string: %s: %v", e.Reason, e.Err)
	}
	return "decode share string: " + e.Reason
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

// base64 reserves '+', '/' and '=' which are not safe inside a query value.
var (
	toURLSafe   = strings.NewReplacer("+", ".", "/", "_", "=", "-")
	fromURLSafe = strings.NewReplacer(".", "+", "_", "/", "-", "=", " ", "+")
)

// Encode returns the share string for items. An empty list encodes to "".
func Encode(items model.List) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(separator)
		}
		b.WriteString(it.Text)
		if it.Checked {
			b.WriteByte(flagOn)
		} else {
			b.WriteByte(flagOff)
		}
	}
	return toURLSafe.Replace(base64.StdEncoding.EncodeToString([]byte(b.String())))
}

// Decode parses a share string, assigning a fresh id to every item.
func Decode(s string) (model.List, error) {
	return DecodeWithIDs(s, ids.Next)
}

// DecodeWithIDs is Decode with a caller-supplied id source.
func DecodeWithIDs(s string, nextID func() string) (model.List, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &DecodeError{Reason: "empty input"}
	}
	raw, err := decodeBase64(fromURLSafe.Replace(s))
	if err != nil {
		return nil, &DecodeError{Reason: "invalid base64", Err: err}
	}
	if len(raw) == 0 {
		return nil, &DecodeError{Reason: "empty payload"}
	}

	tokens := splitTokens(payloadString(raw))
	out := make(model.List, 0, len(tokens))
	for i, tok := range tokens {
		if tok == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf("token %d is empty", i)}
		}
		flag := tok[len(tok)-1]
		if flag != flagOn && flag != flagOff {
			return nil, &DecodeError{Reason: fmt.Sprintf("token %d has no checked flag", i)}
		}
		out = append(out, model.Item{
			ID:      nextID(),
			Text:    tok[:len(tok)-1],
			Checked: flag == flagOn,
		})
	}
	return out, nil
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	// Links copied by hand sometimes lose their padding.
	if b2, err2 := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err2 == nil {
		return b2, nil
	}
	return nil, err
}

// payloadString reads the decoded bytes as UTF-8, falling back to Latin-1:
// older links were produced by a browser btoa over Latin-1 strings.
func payloadString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// splitTokens cuts s after every flag digit that is directly followed by the
// separator. Matches do not overlap and are found left to right.
func splitTokens(s string) []string {
	var tokens []string
	start := 0
	for i := 0; i+1 < len(s); i++ {
		if (s[i] == flagOn || s[i] == flagOff) && s[i+1] == separator {
			tokens = append(tokens, s[start:i+1])
			start = i + 2
			i++
		}
	}
	return append(tokens, s[start:])
}
