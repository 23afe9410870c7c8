package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/listlist/internal/model"
)

func sampleList() model.List {
	return model.List{
		{ID: "GmQHYM3b8i", Text: "Make to do list", Checked: true},
		{ID: "HP3OJ6nOIG", Text: "Realize you've already accomplished 2 things", Checked: true},
		{ID: "t6brMWNG2d", Text: "Check off first thing on to do list", Checked: true},
		{ID: "DbxtHafhkH", Text: "Reward yourself with nap", Checked: false},
	}
}

// sameContent compares text and checked in order; ids are not part of the wire format.
func sameContent(t *testing.T, got, want model.List) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Text != want[i].Text || got[i].Checked != want[i].Checked {
			t.Fatalf("item %d: expected %q/%v, got %q/%v", i, want[i].Text, want[i].Checked, got[i].Text, got[i].Checked)
		}
	}
}

func TestEncode_KnownShareString(t *testing.T) {
	want := "TWFrZSB0byBkbyBsaXN0MXxSZWFsaXplIHlvdSd2ZSBhbHJlYWR5IGFjY29tcGxpc2hlZCAyIHRoaW5nczF8Q2hlY2sgb2ZmIGZpcnN0IHRoaW5nIG9uIHRvIGRvIGxpc3QxfFJld2FyZCB5b3Vyc2VsZiB3aXRoIG5hcDA-"
	if got := Encode(sampleList()); got != want {
		t.Fatalf("unexpected share string:\n got %s\nwant %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]model.List{
		"sample":         sampleList(),
		"single":         {{Text: "X"}},
		"pipe in text":   {{Text: "a|b", Checked: true}, {Text: "c"}},
		"trailing pipe":  {{Text: "ends with |"}, {Text: "next"}},
		"digits":         {{Text: "room 101", Checked: true}, {Text: "2"}},
		"unicode":        {{Text: "café ☕"}, {Text: "日本語", Checked: true}},
		"empty text":     {{Text: ""}, {Text: "", Checked: true}},
		"url reserved":   {{Text: "~~~>>>???"}, {Text: ">>>???~~~a", Checked: true}},
		"spaces":         {{Text: "  padded  "}},
		"question marks": {{Text: "??>>~~"}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			s := Encode(items)
			got, err := Decode(s)
			if err != nil {
				t.Fatalf("decode %q: %v", s, err)
			}
			sameContent(t, got, items)
		})
	}
}

func TestEncode_IsURLSafe(t *testing.T) {
	s := Encode(model.List{{Text: "~~~>>>???"}, {Text: "ÿÿÿÿ"}})
	if strings.ContainsAny(s, "+/=") {
		t.Fatalf("share string still has reserved characters: %q", s)
	}
}

// The legacy encoder substituted only the first '+', '/' and '=' it found.
// Replace-all must substitute every occurrence.
func TestEncode_SubstitutesEveryReservedCharacter(t *testing.T) {
	if got, want := Encode(model.List{{Text: "~~~>>>???"}}), "fn5.Pj4.Pz8_MA--"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDecode_LegacyFirstOccurrenceLinks(t *testing.T) {
	cases := []struct {
		in   string
		want model.List
	}{
		{"fn5.Pj4+Pz8_MA-=", model.List{{Text: "~~~>>>???"}}},
		// A raw '+' turned into a space by query decoding.
		{"fn5.Pj4 Pz8_MA-=", model.List{{Text: "~~~>>>???"}}},
		{"Pz8.Pn5+MA-=", model.List{{Text: "??>>~~"}}},
		// btoa encoded Latin-1 bytes.
		{"Y2Fm6TA-", model.List{{Text: "café"}}},
		{"_////zA-", model.List{{Text: "ÿÿÿÿ"}}},
	}
	for _, tc := range cases {
		got, err := Decode(tc.in)
		if err != nil {
			t.Fatalf("decode %q: %v", tc.in, err)
		}
		sameContent(t, got, tc.want)
	}
}

func TestDecode_SplitsOnlyAtFlagBoundaries(t *testing.T) {
	got, err := Decode(Encode(model.List{{Text: "a|b", Checked: true}, {Text: "c"}}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got.Texts(), []string{"a|b", "c"}) {
		t.Fatalf("unexpected texts: %q", got.Texts())
	}
}

// Text containing a flag digit followed by the separator collides with the
// token boundary; this is a documented limitation of the format.
func TestDecode_DelimiterCollisionIsLossy(t *testing.T) {
	got, err := Decode(Encode(model.List{{Text: "a1|b"}}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected collision to split into 2 items, got %+v", got)
	}
}

func TestDecode_AssignsFreshIDs(t *testing.T) {
	n := 0
	next := func() string {
		n++
		return strings.Repeat("x", n)
	}
	got, err := DecodeWithIDs(Encode(sampleList()), next)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, it := range got {
		if it.ID != strings.Repeat("x", i+1) {
			t.Fatalf("item %d: unexpected id %q", i, it.ID)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"blank":          "   ",
		"bad alphabet":   "!!!not base64!!!",
		"no flag":        "WA--", // "X"
		"trailing sep":   "YTF8",  // "a1|"
		"empty payload":  "----",
		"flag only text": "YXxi", // "a|b"
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(in)
			if err == nil {
				t.Fatalf("expected error for %q, got %+v", in, got)
			}
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			if got != nil {
				t.Fatalf("expected no partial list, got %+v", got)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
		})
	}
}

func TestEncode_EmptyList(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Fatalf("expected empty share string, got %q", got)
	}
}
