package engine

// tokenSet returns the distinct word tokens of a text.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// JaccardScore computes the Jaccard index over distinct word tokens
// (type-level, not token-level), scaled to [0,100].
func JaccardScore(a, b NormalizedText) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}

	setA := tokenSet(a.Tokens)
	setB := tokenSet(b.Tokens)

	intersection := 0
	for word := range setA {
		if _, ok := setB[word]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return clampScore(100 * float64(intersection) / float64(union))
}
