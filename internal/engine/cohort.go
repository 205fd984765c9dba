package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/nityakrishna/veritas/internal/models"
	"github.com/rs/zerolog/log"
)

// rankedMatch pairs a comparison outcome with its partner submission.
type rankedMatch struct {
	other      *models.Submission
	comparison PairComparison
}

// AnalyzeCohort compares the subject against every other submission in
// its cohort and assembles the full report. Fewer than two submissions
// in the cohort, or an empty subject, yields a defined zero-score
// result rather than an error. The cache may be nil.
func (e *Engine) AnalyzeCohort(
	ctx context.Context,
	subject *models.Submission,
	others []*models.Submission,
	pool *WorkerPool,
	cache *PairCache,
) *models.PlagiarismResult {
	subjectText := Normalize(subject.Content)

	result := &models.PlagiarismResult{
		SubmissionID:       subject.ID,
		RiskLevel:          models.RiskNone,
		SimilarSubmissions: []models.SimilarityResult{},
		AnalysisDetails:    e.Analyze(subjectText),
	}

	if subjectText.Empty() || len(others) == 0 {
		return result
	}

	matches := e.compareAgainst(ctx, subjectText, subject.ID, others, pool, cache)
	if len(matches) == 0 {
		return result
	}

	// Similarity descending, then id ascending: a strict total order,
	// so equal scores rank reproducibly.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].comparison.Scores.Composite != matches[j].comparison.Scores.Composite {
			return matches[i].comparison.Scores.Composite > matches[j].comparison.Scores.Composite
		}
		return matches[i].other.ID < matches[j].other.ID
	})

	// The worst case drives the risk label: a submission is only as
	// clean as its most similar match.
	top := matches[0]
	result.OverallScore = top.comparison.Scores.Composite
	result.RiskLevel = RiskLevelFor(result.OverallScore, e.cfg.RiskThresholds)
	result.NGramScore = math.Round(top.comparison.Scores.NGram)
	result.CosineScore = math.Round(top.comparison.Scores.Cosine)
	result.LCSScore = math.Round(top.comparison.Scores.LCS)
	result.JaccardScore = math.Round(top.comparison.Scores.Jaccard)
	result.SentenceScore = math.Round(top.comparison.Scores.Sentence)
	result.WordFrequencyScore = math.Round(top.comparison.Scores.WordFrequency)

	for _, m := range matches {
		if m.comparison.Scores.Composite <= e.cfg.MinSimilarityPercent {
			break
		}
		if len(result.SimilarSubmissions) >= e.cfg.MaxSimilarMatches {
			break
		}
		result.SimilarSubmissions = append(result.SimilarSubmissions, models.SimilarityResult{
			SubmissionID:   m.other.ID,
			StudentName:    m.other.StudentName,
			Similarity:     m.comparison.Scores.Composite,
			MatchCount:     m.comparison.MatchCount,
			MatchedPhrases: m.comparison.MatchedPhrases,
		})
		result.AnalysisDetails.CommonPhraseCount += len(m.comparison.MatchedPhrases)
	}

	return result
}

// compareAgainst fans the pairwise comparisons out over the worker
// pool and joins the outcomes. Cohort analysis is embarrassingly
// parallel across pairs; determinism comes from the sort afterwards.
func (e *Engine) compareAgainst(
	ctx context.Context,
	subjectText NormalizedText,
	subjectID string,
	others []*models.Submission,
	pool *WorkerPool,
	cache *PairCache,
) []rankedMatch {
	matches := make([]rankedMatch, 0, len(others))

	resultChan := make(chan pairOutcome, len(others))
	pending := 0

	for _, other := range others {
		if other.ID == subjectID {
			continue
		}
		if comparison, ok := cache.Get(subjectID, other.ID); ok {
			matches = append(matches, rankedMatch{other: other, comparison: comparison})
			continue
		}

		otherText := Normalize(other.Content)
		if otherText.Empty() {
			// Empty partners are never flagged in either direction.
			continue
		}

		job := &comparisonJob{
			engine:     e,
			subject:    subjectText,
			other:      otherText,
			otherSub:   other,
			resultChan: resultChan,
		}
		if err := pool.Submit(job); err != nil {
			log.Error().Err(err).Str("submissionId", other.ID).Msg("Failed to submit comparison job")
			continue
		}
		pending++
	}

	for pending > 0 {
		select {
		case <-ctx.Done():
			return matches
		case outcome := <-resultChan:
			cache.Put(subjectID, outcome.other.ID, outcome.comparison)
			matches = append(matches, rankedMatch{other: outcome.other, comparison: outcome.comparison})
			pending--
		}
	}

	return matches
}

// CheckSingle runs one cohort analysis for a submission and persists
// the result. Persistence failures propagate: a single check has no
// "continue" semantics.
func (e *Engine) CheckSingle(
	ctx context.Context,
	store Store,
	pool *WorkerPool,
	submissionID, assignmentID string,
) (*models.PlagiarismResult, error) {
	subject, err := store.FetchSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission %s: %w", submissionID, err)
	}
	if subject == nil {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, submissionID)
	}

	cohort, err := store.FetchCohort(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cohort for assignment %s: %w", assignmentID, err)
	}

	others := make([]*models.Submission, 0, len(cohort))
	for _, sub := range cohort {
		if sub.ID != subject.ID {
			others = append(others, sub)
		}
	}

	result := e.AnalyzeCohort(ctx, subject, others, pool, nil)

	if err := store.PersistResult(ctx, subject.ID, result); err != nil {
		return nil, fmt.Errorf("failed to persist result for submission %s: %w", subject.ID, err)
	}

	return result, nil
}
