package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/nityakrishna/veritas/internal/models"
)

// MatchedPhrases extracts n-gram phrases present in both texts,
// longest first, deduplicated by containment, capped at
// cfg.MaxMatchedPhrases. Within one size, phrases keep the first-
// occurrence order of text a so output is deterministic.
func (e *Engine) MatchedPhrases(a, b NormalizedText) []string {
	if a.Empty() || b.Empty() {
		return []string{}
	}

	phrases := make([]string, 0, e.cfg.MaxMatchedPhrases)
	for n := e.cfg.MaxPhraseTokens; n >= 3; n-- {
		if len(phrases) >= e.cfg.MaxMatchedPhrases {
			break
		}
		setB := ngramSet(b.Tokens, n)
		if len(setB) == 0 {
			continue
		}
		for _, gram := range ngramList(a.Tokens, n) {
			if len(phrases) >= e.cfg.MaxMatchedPhrases {
				break
			}
			if _, ok := setB[gram]; !ok {
				continue
			}
			if containedInAny(gram, phrases) {
				continue
			}
			phrases = append(phrases, gram)
		}
	}
	return phrases
}

// containedInAny reports whether the phrase overlaps an already-kept
// phrase in either direction.
func containedInAny(phrase string, kept []string) bool {
	for _, k := range kept {
		if strings.Contains(k, phrase) || strings.Contains(phrase, k) {
			return true
		}
	}
	return false
}

// Analyze computes descriptive statistics and suspicious-pattern flags
// for one submission's own text, independent of any partner.
func (e *Engine) Analyze(t NormalizedText) models.AnalysisDetails {
	details := models.AnalysisDetails{
		TotalWords:         len(t.Tokens),
		TotalSentences:     len(t.Sentences),
		SuspiciousPatterns: []string{},
	}
	if len(t.Tokens) == 0 {
		return details
	}

	details.UniqueWords = len(tokenSet(t.Tokens))
	details.VocabularyRichness = round1(100 * float64(details.UniqueWords) / float64(details.TotalWords))

	totalLen := 0
	for _, tok := range t.Tokens {
		totalLen += len([]rune(tok))
	}
	details.AverageWordLength = round1(float64(totalLen) / float64(details.TotalWords))

	details.SuspiciousPatterns = e.suspiciousPatterns(t)
	return details
}

// suspiciousPatterns runs the best-effort heuristics. Output strings
// are human-readable flags, not scores.
func (e *Engine) suspiciousPatterns(t NormalizedText) []string {
	patterns := []string{}

	// Abrupt richness shift between document halves suggests a
	// partial copy-paste.
	if len(t.Tokens) >= 20 {
		mid := len(t.Tokens) / 2
		first := richness(t.Tokens[:mid])
		second := richness(t.Tokens[mid:])
		if math.Abs(first-second) > e.cfg.RichnessShiftDelta {
			patterns = append(patterns, fmt.Sprintf(
				"vocabulary richness shifts from %.0f to %.0f between document halves",
				first, second))
		}
	}

	// Many near-identical sentence lengths suggest templated or
	// pasted content.
	if len(t.Sentences) >= 5 {
		if uniform, mode := uniformSentenceLengths(t.Sentences, e.cfg.UniformSentenceFraction); uniform {
			patterns = append(patterns, fmt.Sprintf(
				"most sentences are %d±1 words long (templated or pasted content)", mode))
		}
	}

	// Verbatim repeated sentences within one submission.
	counts := make(map[string]int, len(t.Sentences))
	order := make([]string, 0, len(t.Sentences))
	for _, s := range t.Sentences {
		joined := strings.Join(s, " ")
		if counts[joined] == 0 {
			order = append(order, joined)
		}
		counts[joined]++
	}
	for _, joined := range order {
		if counts[joined] >= 2 {
			patterns = append(patterns, fmt.Sprintf(
				"sentence repeated %d times: %q", counts[joined], truncatePhrase(joined, 60)))
		}
	}

	// A single long word dominating the text reads as filler or
	// keyword stuffing. Words are visited in first-occurrence order to
	// keep repeated runs byte-identical.
	freq := termFrequencies(t.Tokens)
	seen := make(map[string]struct{}, len(freq))
	for _, word := range t.Tokens {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		ratio := float64(freq[word]) / float64(len(t.Tokens))
		if ratio > 0.05 && len(word) > 4 {
			patterns = append(patterns, fmt.Sprintf(
				"word %q makes up %.0f%% of the text", word, ratio*100))
		}
	}

	if len(patterns) > 5 {
		patterns = patterns[:5]
	}
	return patterns
}

func richness(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return 100 * float64(len(tokenSet(tokens))) / float64(len(tokens))
}

// uniformSentenceLengths reports whether more than maxFraction of
// sentences are within one word of the most common sentence length.
func uniformSentenceLengths(sentences [][]string, maxFraction float64) (bool, int) {
	lengths := make(map[int]int, len(sentences))
	for _, s := range sentences {
		lengths[len(s)]++
	}

	mode, modeCount := 0, 0
	for l, c := range lengths {
		if c > modeCount || (c == modeCount && l < mode) {
			mode, modeCount = l, c
		}
	}

	near := 0
	for _, s := range sentences {
		if d := len(s) - mode; d >= -1 && d <= 1 {
			near++
		}
	}
	return float64(near)/float64(len(sentences)) > maxFraction, mode
}

func truncatePhrase(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
