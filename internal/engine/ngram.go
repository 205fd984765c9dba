package engine

import "strings"

// ngramSet builds the set of contiguous token n-grams of size n.
func ngramSet(tokens []string, n int) map[string]struct{} {
	if n <= 0 || len(tokens) < n {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return set
}

// ngramList returns the n-grams of size n in first-occurrence order,
// without duplicates. Used by evidence extraction, where ordering must
// be deterministic.
func ngramList(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens)-n+1)
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		g := strings.Join(tokens[i:i+n], " ")
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		grams = append(grams, g)
	}
	return grams
}

// containment scores the overlap of two n-gram sets against the
// smaller set. A short copied excerpt inside a long submission still
// scores high; the asymmetric risk is deliberate.
func containment(a, b map[string]struct{}) float64 {
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller == 0 {
		return 0
	}
	shared := 0
	for g := range a {
		if _, ok := b[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(smaller)
}

// NGramScore combines bigram and trigram containment into a [0,100]
// score. Sizes neither text can produce are skipped so that short but
// identical texts still saturate.
func NGramScore(a, b NormalizedText) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}

	sum := 0.0
	sizes := 0
	for _, n := range []int{2, 3} {
		if len(a.Tokens) < n || len(b.Tokens) < n {
			continue
		}
		sum += containment(ngramSet(a.Tokens, n), ngramSet(b.Tokens, n))
		sizes++
	}
	if sizes == 0 {
		return 0
	}
	return clampScore(100 * sum / float64(sizes))
}
