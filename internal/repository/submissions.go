package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/nityakrishna/veritas/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const submissionsCollection = "submissions"

// SubmissionsRepository is the submission store boundary. It reads
// submissions and writes plagiarism results; submission content is
// owned elsewhere and never modified here.
type SubmissionsRepository struct {
	mongoRepo *MongoRepository
}

func NewSubmissionsRepository(mongoRepo *MongoRepository) *SubmissionsRepository {
	return &SubmissionsRepository{
		mongoRepo: mongoRepo,
	}
}

// FetchSubmission returns one submission, or (nil, nil) when the id is
// unknown.
func (r *SubmissionsRepository) FetchSubmission(ctx context.Context, id string) (*models.Submission, error) {
	filter := bson.M{"_id": id}

	var submission models.Submission
	err := r.mongoRepo.FindOne(ctx, submissionsCollection, filter).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	return &submission, nil
}

// FetchCohort returns all non-deleted submissions of an assignment in
// ascending id order, which keeps batch runs deterministic.
func (r *SubmissionsRepository) FetchCohort(ctx context.Context, assignmentID string) ([]*models.Submission, error) {
	filter := bson.M{
		"assignmentId": assignmentID,
		"deletedAt":    bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.mongoRepo.FindMany(ctx, submissionsCollection, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cohort: %w", err)
	}
	defer cursor.Close(ctx)

	var submissions []*models.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode cohort: %w", err)
	}

	return submissions, nil
}

// PersistResult overwrites the submission's plagiarism result. The
// checked-at stamp lives on the document, outside the result itself,
// so identical re-runs produce identical result payloads.
func (r *SubmissionsRepository) PersistResult(ctx context.Context, submissionID string, result *models.PlagiarismResult) error {
	filter := bson.M{"_id": submissionID}
	update := bson.M{"$set": bson.M{
		"plagiarismResult":    result,
		"plagiarismCheckedAt": time.Now().UTC(),
	}}

	res, err := r.mongoRepo.UpdateOne(ctx, submissionsCollection, filter, update)
	if err != nil {
		return fmt.Errorf("failed to persist plagiarism result: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("submission %s not found for result persist", submissionID)
	}

	return nil
}

// CountCohort returns the cohort size without fetching content.
func (r *SubmissionsRepository) CountCohort(ctx context.Context, assignmentID string) (int64, error) {
	filter := bson.M{
		"assignmentId": assignmentID,
		"deletedAt":    bson.M{"$exists": false},
	}

	count, err := r.mongoRepo.CountDocuments(ctx, submissionsCollection, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count cohort: %w", err)
	}

	return count, nil
}
