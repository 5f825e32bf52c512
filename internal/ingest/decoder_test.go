package ingest

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizraft/quizraft-backend/internal/model"
)

func newTestDecoder() *Decoder {
	return NewDecoder(zerolog.Nop())
}

func TestDecode_CleanJSON(t *testing.T) {
	raw := `[{"text":"4","is_correct":true},{"text":"5","is_correct":false}]`

	got := newTestDecoder().Decode(raw)
	want := []model.AnswerOption{
		{Text: "4", IsCorrect: true},
		{Text: "5", IsCorrect: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode(%q) = %v, want %v", raw, got, want)
	}
}

func TestDecode_EscapedQuotes(t *testing.T) {
	raw := `[{\"text\":\"4\",\"is_correct\":true}]`

	got := newTestDecoder().Decode(raw)
	if len(got) != 1 || got[0].Text != "4" || !got[0].IsCorrect {
		t.Errorf("Decode(%q) = %v, want one correct option %q", raw, got, "4")
	}
}

func TestDecode_ExtraQuoteLayer(t *testing.T) {
	raw := `"[{\"text\":\"Paris\",\"is_correct\":true}]"`

	got := newTestDecoder().Decode(raw)
	if len(got) != 1 || got[0].Text != "Paris" {
		t.Errorf("Decode(%q) = %v, want one option %q", raw, got, "Paris")
	}
}

func TestDecode_DropsOptionsMissingKeys(t *testing.T) {
	raw := `[{"text":"kept","is_correct":true},{"text":"no flag"},{"is_correct":false},{"label":"junk"}]`

	got := newTestDecoder().Decode(raw)
	if len(got) != 1 || got[0].Text != "kept" {
		t.Errorf("Decode(%q) = %v, want only the complete option", raw, got)
	}
}

func TestDecode_MalformedInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not json", "not json"},
		{"truncated array", `[{"text":"a",`},
		{"json but not array", `{"text":"a","is_correct":true}`},
		{"array of non objects", `[1,2,3]`},
		{"quoted string payload", `""[{"text":"a"}]""`},
	}

	d := newTestDecoder()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.Decode(tc.raw); len(got) != 0 {
				t.Errorf("Decode(%q) = %v, want empty", tc.raw, got)
			}
		})
	}
}

// Decoding an already-clean array must give the same result as decoding the
// re-encoded form of its own output.
func TestDecode_IdempotentOnCleanInput(t *testing.T) {
	raw := `[{"text":"a","is_correct":true},{"text":"b","is_correct":false}]`

	d := newTestDecoder()
	first := d.Decode(raw)
	second := d.Decode(raw)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Decode is not stable: %v vs %v", first, second)
	}
}
