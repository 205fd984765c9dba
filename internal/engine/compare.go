package engine

import (
	"context"

	"github.com/nityakrishna/veritas/internal/models"
)

// PairComparison is the outcome of one pairwise comparison, symmetric
// in its inputs and reusable for both directions.
type PairComparison struct {
	Scores         PairScores
	MatchedPhrases []string
	MatchCount     int
}

// ComparePair runs all six metrics over two normalized texts and
// combines them. Either side being empty yields a zero-similarity
// result, never an error: empty submissions are not flagged.
func (e *Engine) ComparePair(a, b NormalizedText) PairScores {
	if a.Empty() || b.Empty() {
		return PairScores{}
	}

	scores := PairScores{
		NGram:         NGramScore(a, b),
		Cosine:        CosineScore(a, b),
		LCS:           LCSScore(a, b, e.cfg.LCSMaxTokens),
		Jaccard:       JaccardScore(a, b),
		Sentence:      SentenceScore(a, b, e.cfg.SentenceMatchThreshold),
		WordFrequency: WordFrequencyScore(a, b),
	}
	scores.Composite = Combine(scores, e.cfg.Weights)
	return scores
}

// compareFull also extracts evidence for the pair.
func (e *Engine) compareFull(a, b NormalizedText) PairComparison {
	scores := e.ComparePair(a, b)
	matched, _ := matchedSentences(a, b, e.cfg.SentenceMatchThreshold)
	return PairComparison{
		Scores:         scores,
		MatchedPhrases: e.MatchedPhrases(a, b),
		MatchCount:     matched,
	}
}

// pairOutcome carries one comparison back from the worker pool.
type pairOutcome struct {
	other      *models.Submission
	comparison PairComparison
}

// comparisonJob is the worker pool job for a single pair.
type comparisonJob struct {
	engine     *Engine
	subject    NormalizedText
	other      NormalizedText
	otherSub   *models.Submission
	resultChan chan<- pairOutcome
}

// Execute runs the comparison and delivers its outcome.
func (j *comparisonJob) Execute(ctx context.Context) error {
	outcome := pairOutcome{
		other:      j.otherSub,
		comparison: j.engine.compareFull(j.subject, j.other),
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case j.resultChan <- outcome:
		return nil
	}
}
