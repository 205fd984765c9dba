package engine

import (
	"strings"
	"unicode"
)

// NormalizedText is the canonical token stream for one submission.
// Built fresh per comparison and owned by the caller.
type NormalizedText struct {
	Tokens    []string
	Sentences [][]string
	RawLength int
}

// Empty reports whether the text carries no comparable content.
// Downstream metrics treat empty texts as "no similarity", not errors.
func (t NormalizedText) Empty() bool {
	return len(t.Tokens) == 0
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Normalize lowercases the text, strips punctuation except sentence
// terminators, collapses whitespace and segments sentences.
func Normalize(raw string) NormalizedText {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NormalizedText{}
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range strings.ToLower(trimmed) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case isTerminator(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	cleaned := b.String()

	sentences := make([][]string, 0)
	for _, part := range strings.FieldsFunc(cleaned, isTerminator) {
		words := strings.Fields(part)
		if len(words) > 0 {
			sentences = append(sentences, words)
		}
	}

	tokens := strings.Fields(strings.Map(func(r rune) rune {
		if isTerminator(r) {
			return ' '
		}
		return r
	}, cleaned))

	return NormalizedText{
		Tokens:    tokens,
		Sentences: sentences,
		RawLength: len(trimmed),
	}
}
