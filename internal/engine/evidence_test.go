package engine

import (
	"reflect"
	"strings"
	"testing"
)

func hasPatternContaining(patterns []string, substr string) bool {
	for _, p := range patterns {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

func TestMatchedPhrases(t *testing.T) {
	e := New(DefaultConfig())

	t.Run("identical texts keep longest phrases first", func(t *testing.T) {
		text := Normalize("The quick brown fox jumps over the lazy dog.")
		got := e.MatchedPhrases(text, text)
		if len(got) == 0 {
			t.Fatal("expected phrases for identical texts")
		}
		if got[0] != "the quick brown fox jumps over" {
			t.Errorf("first phrase = %q, want the leading six-gram", got[0])
		}
		for _, p := range got {
			if n := len(strings.Fields(p)); n != 6 {
				t.Errorf("phrase %q has %d tokens, want 6", p, n)
			}
		}
		joined := strings.Join(got, " | ")
		if !strings.Contains(joined, "lazy dog") {
			t.Errorf("phrases %v should cover the tail of the text", got)
		}
	})

	t.Run("short shared run yields the trigram", func(t *testing.T) {
		a := Normalize("students like the green apples today honestly")
		b := Normalize("teachers hate the green apples instead")
		got := e.MatchedPhrases(a, b)
		want := []string{"the green apples"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MatchedPhrases = %v, want %v", got, want)
		}
	})

	t.Run("no phrase contains another", func(t *testing.T) {
		a := Normalize("one two three four five six seven eight nine ten eleven twelve")
		got := e.MatchedPhrases(a, a)
		for i, p := range got {
			for j, q := range got {
				if i != j && strings.Contains(p, q) {
					t.Errorf("phrase %q contains kept phrase %q", p, q)
				}
			}
		}
	})

	t.Run("respects the phrase cap", func(t *testing.T) {
		long := Normalize("a b c d e f g h i j k l m n o p q r s t u v")
		got := e.MatchedPhrases(long, long)
		if len(got) != e.Config().MaxMatchedPhrases {
			t.Errorf("got %d phrases, want cap %d", len(got), e.Config().MaxMatchedPhrases)
		}
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		got := e.MatchedPhrases(Normalize(""), Normalize("anything at all here"))
		if got == nil || len(got) != 0 {
			t.Errorf("MatchedPhrases = %v, want empty slice", got)
		}
	})
}

func TestAnalyze(t *testing.T) {
	e := New(DefaultConfig())

	t.Run("basic statistics", func(t *testing.T) {
		got := e.Analyze(Normalize("The quick brown fox. The quick brown fox. Lazy dogs sleep."))
		if got.TotalWords != 11 {
			t.Errorf("TotalWords = %d, want 11", got.TotalWords)
		}
		if got.UniqueWords != 7 {
			t.Errorf("UniqueWords = %d, want 7", got.UniqueWords)
		}
		if got.TotalSentences != 3 {
			t.Errorf("TotalSentences = %d, want 3", got.TotalSentences)
		}
		if !almostEqual(got.VocabularyRichness, 63.6) {
			t.Errorf("VocabularyRichness = %v, want 63.6", got.VocabularyRichness)
		}
		if !almostEqual(got.AverageWordLength, 4.1) {
			t.Errorf("AverageWordLength = %v, want 4.1", got.AverageWordLength)
		}
		if !hasPatternContaining(got.SuspiciousPatterns, "repeated 2 times") {
			t.Errorf("patterns %v should flag the repeated sentence", got.SuspiciousPatterns)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		got := e.Analyze(Normalize(""))
		if got.TotalWords != 0 || got.TotalSentences != 0 || got.UniqueWords != 0 {
			t.Errorf("unexpected counts for empty text: %+v", got)
		}
		if got.SuspiciousPatterns == nil || len(got.SuspiciousPatterns) != 0 {
			t.Errorf("SuspiciousPatterns = %v, want empty slice", got.SuspiciousPatterns)
		}
	})

	t.Run("dominant word flagged", func(t *testing.T) {
		got := e.Analyze(Normalize("essay essay essay about things"))
		if !hasPatternContaining(got.SuspiciousPatterns, `"essay"`) {
			t.Errorf("patterns %v should flag the dominant word", got.SuspiciousPatterns)
		}
	})

	t.Run("uniform sentence lengths flagged", func(t *testing.T) {
		raw := "alpha beta gamma delta. epsilon zeta eta theta. iota kappa lambda mu. " +
			"nu xi omicron pi. rho sigma tau upsilon. phi chi psi omega."
		got := e.Analyze(Normalize(raw))
		if !hasPatternContaining(got.SuspiciousPatterns, "4±1 words long") {
			t.Errorf("patterns %v should flag uniform sentence lengths", got.SuspiciousPatterns)
		}
	})

	t.Run("richness shift between halves flagged", func(t *testing.T) {
		raw := "one two three four five six seven eight nine ten " +
			strings.TrimSpace(strings.Repeat("apple ", 10))
		got := e.Analyze(Normalize(raw))
		if !hasPatternContaining(got.SuspiciousPatterns, "richness shifts") {
			t.Errorf("patterns %v should flag the richness shift", got.SuspiciousPatterns)
		}
	})

	t.Run("pattern list capped at five", func(t *testing.T) {
		raw := strings.TrimSpace(strings.Repeat("filler padding matter verbose wording. ", 8))
		got := e.Analyze(Normalize(raw))
		if len(got.SuspiciousPatterns) > 5 {
			t.Errorf("patterns %v exceed the cap", got.SuspiciousPatterns)
		}
	})

	t.Run("repeated analysis is deterministic", func(t *testing.T) {
		raw := "filler filler filler words going places. filler words again maybe. filler words again maybe."
		first := e.Analyze(Normalize(raw))
		second := e.Analyze(Normalize(raw))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Analyze not deterministic: %+v vs %+v", first, second)
		}
	})
}
