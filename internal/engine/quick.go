package engine

import "math"

// QuickScore is a fast preview similarity for two raw texts, blending
// cosine and n-gram overlap half and half. It skips LCS and the
// sentence matcher, so it stays cheap enough for interactive use.
func (e *Engine) QuickScore(textA, textB string) float64 {
	a := Normalize(textA)
	b := Normalize(textB)
	if a.Empty() || b.Empty() {
		return 0
	}
	return clampScore(math.Round(0.5*CosineScore(a, b) + 0.5*NGramScore(a, b)))
}
