package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/nityakrishna/veritas/internal/infra/redis"
	"github.com/nityakrishna/veritas/internal/models"
	"github.com/rs/zerolog/log"
)

const statusTTL = 12 * time.Hour

func statusKey(assignmentID string) string {
	return "plagiarism_check_status:" + assignmentID
}

func progressKey(assignmentID string) string {
	return "plagiarism_check_progress:" + assignmentID
}

func lockKey(assignmentID string) string {
	return "plagiarism_check_lock:" + assignmentID
}

// UpdateStatus mirrors the batch lifecycle step to Redis so a UI can
// poll it.
func UpdateStatus(ctx context.Context, client *redis.Client, assignmentID string, step models.Step) error {
	validSteps := map[models.Step]bool{
		models.StepIdle:      true,
		models.StepQueued:    true,
		models.StepRunning:   true,
		models.StepCompleted: true,
		models.StepFailed:    true,
	}
	if !validSteps[step] {
		return fmt.Errorf("unknown step: %s", step)
	}

	if err := client.Set(ctx, statusKey(assignmentID), string(step), statusTTL).Err(); err != nil {
		log.Error().Err(err).
			Str("step", string(step)).
			Str("assignmentId", assignmentID).
			Msg("Failed to update status in Redis")
		return fmt.Errorf("failed to update status in Redis: %w", err)
	}
	return nil
}

// UpdateProgress mirrors "current/total" to Redis after each completed
// submission.
func UpdateProgress(ctx context.Context, client *redis.Client, assignmentID string, current, total int) error {
	value := fmt.Sprintf("%d/%d", current, total)
	if err := client.Set(ctx, progressKey(assignmentID), value, statusTTL).Err(); err != nil {
		return fmt.Errorf("failed to update progress in Redis: %w", err)
	}
	return nil
}

// ReadStatus returns the current step and progress counters for an
// assignment. A missing key reads as idle.
func ReadStatus(ctx context.Context, client *redis.Client, assignmentID string) (models.Step, int, int, error) {
	step := models.StepIdle
	if raw, err := client.Get(ctx, statusKey(assignmentID)).Result(); err == nil && raw != "" {
		step = models.Step(raw)
	}

	current, total := 0, 0
	if raw, err := client.Get(ctx, progressKey(assignmentID)).Result(); err == nil && raw != "" {
		if _, err := fmt.Sscanf(raw, "%d/%d", &current, &total); err != nil {
			return step, 0, 0, fmt.Errorf("malformed progress value %q: %w", raw, err)
		}
	}
	return step, current, total, nil
}

// AcquireBatchLock takes the per-assignment admission lock. The engine
// assumes at most one in-flight analysis per submission; the lock
// enforces that for whole-assignment runs.
func AcquireBatchLock(ctx context.Context, client *redis.Client, assignmentID string, ttl time.Duration) (bool, error) {
	ok, err := client.SetNX(ctx, lockKey(assignmentID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire batch lock: %w", err)
	}
	return ok, nil
}

// ReleaseBatchLock drops the admission lock after a run finishes.
func ReleaseBatchLock(ctx context.Context, client *redis.Client, assignmentID string) {
	if err := client.Del(ctx, lockKey(assignmentID)).Err(); err != nil {
		log.Warn().Err(err).Str("assignmentId", assignmentID).Msg("Failed to release batch lock")
	}
}
