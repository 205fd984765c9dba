package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/nityakrishna/veritas/internal/models"
	"github.com/rs/zerolog/log"
)

// withoutIndex returns the cohort minus the subject at index i.
func withoutIndex(cohort []*models.Submission, i int) []*models.Submission {
	others := make([]*models.Submission, 0, len(cohort)-1)
	others = append(others, cohort[:i]...)
	others = append(others, cohort[i+1:]...)
	return others
}

// ProgressFunc is invoked after each submission completes, with the
// 1-based completed count and the cohort total. Calls are serialized
// and counts never decrease or exceed the total.
type ProgressFunc func(current, total int)

// BatchFailure records one submission whose result could not be
// persisted during a batch run.
type BatchFailure struct {
	SubmissionID string `json:"submissionId"`
	Reason       string `json:"reason"`
}

// BatchSummary is the aggregate outcome of one assignment-wide check.
type BatchSummary struct {
	AssignmentID string         `json:"assignmentId"`
	Total        int            `json:"total"`
	Succeeded    int            `json:"succeeded"`
	Failures     []BatchFailure `json:"failures"`
}

// CheckCohort analyzes every submission of an assignment in ascending
// id order, persisting each result. A failed persist is recorded and
// the run continues; re-running is idempotent since each result is a
// last-writer-wins overwrite. Cancellation is honored between
// submissions, leaving already-persisted results intact.
func (e *Engine) CheckCohort(
	ctx context.Context,
	store Store,
	pool *WorkerPool,
	assignmentID string,
	onProgress ProgressFunc,
) (*BatchSummary, error) {
	cohort, err := store.FetchCohort(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cohort for assignment %s: %w", assignmentID, err)
	}

	// The store contract already orders by id; sort again so the
	// progression stays deterministic regardless of backend.
	sort.Slice(cohort, func(i, j int) bool { return cohort[i].ID < cohort[j].ID })

	summary := &BatchSummary{
		AssignmentID: assignmentID,
		Total:        len(cohort),
		Failures:     []BatchFailure{},
	}

	cache := NewPairCache()

	for i, subject := range cohort {
		if err := ctx.Err(); err != nil {
			log.Warn().
				Str("assignmentId", assignmentID).
				Int("completed", i).
				Int("total", summary.Total).
				Msg("Batch check cancelled")
			return summary, err
		}

		result := e.AnalyzeCohort(ctx, subject, withoutIndex(cohort, i), pool, cache)

		if err := store.PersistResult(ctx, subject.ID, result); err != nil {
			log.Error().Err(err).
				Str("submissionId", subject.ID).
				Str("assignmentId", assignmentID).
				Msg("Failed to persist plagiarism result")
			summary.Failures = append(summary.Failures, BatchFailure{
				SubmissionID: subject.ID,
				Reason:       err.Error(),
			})
		} else {
			summary.Succeeded++
		}

		if onProgress != nil {
			onProgress(i+1, summary.Total)
		}
	}

	log.Info().
		Str("assignmentId", assignmentID).
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("failed", len(summary.Failures)).
		Msg("Batch check completed")

	return summary, nil
}
