package engine

import (
	"context"
	"errors"

	"github.com/nityakrishna/veritas/internal/models"
)

// ErrSubmissionNotFound marks a check against an unknown submission id.
var ErrSubmissionNotFound = errors.New("submission not found")

// Store is the boundary to the external submission store. The engine
// reads submissions and writes plagiarism results; it never writes
// submission content.
type Store interface {
	// FetchSubmission returns one submission, or (nil, nil) when the
	// id is unknown.
	FetchSubmission(ctx context.Context, id string) (*models.Submission, error)
	// FetchCohort returns all non-deleted submissions of an
	// assignment in a stable order (ascending id).
	FetchCohort(ctx context.Context, assignmentID string) ([]*models.Submission, error)
	// PersistResult overwrites the plagiarism result attribute of one
	// submission. Last writer wins; there is no merge.
	PersistResult(ctx context.Context, submissionID string, result *models.PlagiarismResult) error
}
