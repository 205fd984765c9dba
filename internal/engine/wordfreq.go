package engine

import "math"

// WordFrequencyScore compares the normalized word-frequency
// distributions of both texts over their union vocabulary. The total
// absolute difference between two distributions is at most 2, so
// 100 * (1 - diff/2) lands in [0,100].
func WordFrequencyScore(a, b NormalizedText) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}

	propA := proportions(a.Tokens)
	propB := proportions(b.Tokens)

	totalDiff := 0.0
	for word, pa := range propA {
		totalDiff += math.Abs(pa - propB[word])
	}
	for word, pb := range propB {
		if _, ok := propA[word]; !ok {
			totalDiff += pb
		}
	}

	return clampScore(100 * (1 - totalDiff/2))
}

// proportions maps each word to its share of the total token count.
func proportions(tokens []string) map[string]float64 {
	prop := make(map[string]float64, len(tokens))
	total := float64(len(tokens))
	for _, tok := range tokens {
		prop[tok]++
	}
	for word, count := range prop {
		prop[word] = count / total
	}
	return prop
}
