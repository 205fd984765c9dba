package engine

// LCSScore computes the longest common subsequence ratio of the two
// token sequences, scaled to [0,100]. Each side is truncated at
// maxTokens before the O(n*m) table is filled; this bounds the cost of
// the only superlinear metric and affects this metric alone.
func LCSScore(a, b NormalizedText, maxTokens int) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}

	tokensA := a.Tokens
	tokensB := b.Tokens
	if maxTokens > 0 {
		if len(tokensA) > maxTokens {
			tokensA = tokensA[:maxTokens]
		}
		if len(tokensB) > maxTokens {
			tokensB = tokensB[:maxTokens]
		}
	}

	length := lcsLength(tokensA, tokensB)
	total := len(tokensA) + len(tokensB)
	return clampScore(100 * 2 * float64(length) / float64(total))
}

// lcsLength fills the classic DP table, keeping only two rows.
func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
