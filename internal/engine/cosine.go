package engine

import "math"

// termFrequencies counts token occurrences.
func termFrequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

// CosineScore computes the cosine of the two term-frequency vectors
// over the union vocabulary, scaled to [0,100]. Plain TF is used
// instead of TF-IDF: corpus-wide document frequencies are not
// available for a single pair.
func CosineScore(a, b NormalizedText) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}

	freqA := termFrequencies(a.Tokens)
	freqB := termFrequencies(b.Tokens)

	var dot, magA, magB float64
	for word, fa := range freqA {
		if fb, ok := freqB[word]; ok {
			dot += float64(fa) * float64(fb)
		}
		magA += float64(fa) * float64(fa)
	}
	for _, fb := range freqB {
		magB += float64(fb) * float64(fb)
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return clampScore(100 * dot / (math.Sqrt(magA) * math.Sqrt(magB)))
}
