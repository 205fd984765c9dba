package engine

import "strings"

// SentenceScore computes the fraction of sentences in the shorter text
// that have a close counterpart in the other text, scaled to [0,100].
// A sentence counts as matched when its best normalized edit
// similarity (1 - levenshtein/maxLen) reaches threshold.
func SentenceScore(a, b NormalizedText, threshold float64) float64 {
	matched, total := matchedSentences(a, b, threshold)
	if total == 0 {
		return 0
	}
	return clampScore(100 * float64(matched) / float64(total))
}

// matchedSentences counts matched sentences of the shorter text.
// Symmetric in its inputs, which keeps cached pair results valid for
// both directions.
func matchedSentences(a, b NormalizedText, threshold float64) (matched, total int) {
	shorter, longer := a.Sentences, b.Sentences
	if len(longer) < len(shorter) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0, 0
	}

	longerJoined := make([]string, len(longer))
	for i, s := range longer {
		longerJoined[i] = strings.Join(s, " ")
	}

	for _, s := range shorter {
		joined := strings.Join(s, " ")
		best := 0.0
		for _, other := range longerJoined {
			if sim := editSimilarity(joined, other); sim > best {
				best = sim
			}
		}
		if best >= threshold {
			matched++
		}
	}
	return matched, len(shorter)
}

// editSimilarity returns 1 - levenshtein(a,b)/max(len a, len b).
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a rolling single row.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prevDiag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			insert := row[j-1] + 1
			remove := row[j] + 1
			replace := prevDiag + cost

			best := insert
			if remove < best {
				best = remove
			}
			if replace < best {
				best = replace
			}
			prevDiag = row[j]
			row[j] = best
		}
	}
	return row[len(b)]
}
