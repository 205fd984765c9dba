package engine

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantTokens    []string
		wantSentences [][]string
	}{
		{
			name:          "lowercases and strips punctuation",
			raw:           "The QUICK, brown fox; jumps!",
			wantTokens:    []string{"the", "quick", "brown", "fox", "jumps"},
			wantSentences: [][]string{{"the", "quick", "brown", "fox", "jumps"}},
		},
		{
			name:       "splits sentences on terminators",
			raw:        "First sentence. Second one! Third? ",
			wantTokens: []string{"first", "sentence", "second", "one", "third"},
			wantSentences: [][]string{
				{"first", "sentence"},
				{"second", "one"},
				{"third"},
			},
		},
		{
			name:          "collapses whitespace runs",
			raw:           "a \t b\n\n  c",
			wantTokens:    []string{"a", "b", "c"},
			wantSentences: [][]string{{"a", "b", "c"}},
		},
		{
			name:          "discards empty sentences",
			raw:           "one... two",
			wantTokens:    []string{"one", "two"},
			wantSentences: [][]string{{"one"}, {"two"}},
		},
		{
			name:          "empty input",
			raw:           "",
			wantTokens:    nil,
			wantSentences: nil,
		},
		{
			name:          "whitespace only input",
			raw:           "   \n\t  ",
			wantTokens:    nil,
			wantSentences: nil,
		},
		{
			name:          "punctuation only input",
			raw:           "?!．,;--",
			wantTokens:    nil,
			wantSentences: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if len(got.Tokens) == 0 && len(tc.wantTokens) == 0 {
				if !got.Empty() {
					t.Errorf("expected empty normalized text")
				}
				return
			}
			if !reflect.DeepEqual(got.Tokens, tc.wantTokens) {
				t.Errorf("tokens = %v, want %v", got.Tokens, tc.wantTokens)
			}
			if !reflect.DeepEqual(got.Sentences, tc.wantSentences) {
				t.Errorf("sentences = %v, want %v", got.Sentences, tc.wantSentences)
			}
		})
	}
}

func TestNormalizeRawLength(t *testing.T) {
	got := Normalize("  abc def  ")
	if got.RawLength != len("abc def") {
		t.Errorf("rawLength = %d, want %d", got.RawLength, len("abc def"))
	}

	if empty := Normalize(""); empty.RawLength != 0 {
		t.Errorf("rawLength of empty input = %d, want 0", empty.RawLength)
	}
}
