package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nityakrishna/veritas/internal/config"
	"github.com/nityakrishna/veritas/internal/engine"
	redisInfra "github.com/nityakrishna/veritas/internal/infra/redis"
	"github.com/nityakrishna/veritas/internal/models"
	"github.com/nityakrishna/veritas/internal/observability"
	"github.com/nityakrishna/veritas/internal/repository"
	"github.com/rs/zerolog/log"
)

// Handler holds dependencies for handlers
type Handler struct {
	cfg          *config.Config
	subsRepo     *repository.SubmissionsRepository
	eng          *engine.Engine
	pool         *engine.WorkerPool
	redisClient  *redisInfra.Client
	checkSem     chan struct{} // Semaphore for bounded concurrency
	checkTimeout time.Duration
}

// NewHandler creates a new handler
func NewHandler(
	cfg *config.Config,
	subsRepo *repository.SubmissionsRepository,
	eng *engine.Engine,
	pool *engine.WorkerPool,
	redisClient *redisInfra.Client,
) *Handler {
	return &Handler{
		cfg:          cfg,
		subsRepo:     subsRepo,
		eng:          eng,
		pool:         pool,
		redisClient:  redisClient,
		checkSem:     make(chan struct{}, cfg.MaxConcurrentChecks),
		checkTimeout: cfg.CheckTimeout,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// CheckSubmission runs one cohort analysis synchronously and returns
// the full report. Persistence failures surface to the caller.
func (h *Handler) CheckSubmission(c *gin.Context) {
	var req models.CheckSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.checkTimeout)
	defer cancel()

	start := time.Now()
	result, err := h.eng.CheckSingle(ctx, h.subsRepo, h.pool, req.SubmissionID, req.AssignmentID)
	if err != nil {
		if errors.Is(err, engine.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Submission not found",
				Code:  "SUBMISSION_NOT_FOUND",
			})
			return
		}
		log.Error().Err(err).
			Str("submissionId", req.SubmissionID).
			Str("assignmentId", req.AssignmentID).
			Msg("Single check failed")
		observability.ChecksTotal.WithLabelValues("single", "failed").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to check submission",
			Code:  "CHECK_FAILED",
		})
		return
	}

	observability.ChecksTotal.WithLabelValues("single", "completed").Inc()
	observability.CheckDuration.WithLabelValues("single").Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, result)
}

// CheckAssignment starts an asynchronous batch check over the whole
// cohort. At most one run per assignment is admitted at a time.
func (h *Handler) CheckAssignment(c *gin.Context) {
	assignmentID := c.Param("id")
	if assignmentID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "assignment id is required",
			Code:  "INVALID_ASSIGNMENT_ID",
		})
		return
	}

	ctx := c.Request.Context()
	count, err := h.subsRepo.CountCohort(ctx, assignmentID)
	if err != nil {
		log.Error().Err(err).Str("assignmentId", assignmentID).Msg("Failed to count cohort")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to check cohort",
			Code:  "INTERNAL_ERROR",
		})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "No submissions found for assignment",
			Code:  "ASSIGNMENT_NOT_FOUND",
		})
		return
	}

	acquired, err := engine.AcquireBatchLock(ctx, h.redisClient, assignmentID, h.checkTimeout)
	if err != nil {
		log.Error().Err(err).Str("assignmentId", assignmentID).Msg("Failed to acquire batch lock")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to start check",
			Code:  "INTERNAL_ERROR",
		})
		return
	}
	if !acquired {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: "A check for this assignment is already running",
			Code:  "CHECK_IN_PROGRESS",
		})
		return
	}

	// Acquire semaphore (bounded concurrency)
	select {
	case h.checkSem <- struct{}{}:
	case <-ctx.Done():
		engine.ReleaseBatchLock(context.Background(), h.redisClient, assignmentID)
		c.JSON(http.StatusRequestTimeout, models.ErrorResponse{
			Error: "Request cancelled",
			Code:  "REQUEST_TIMEOUT",
		})
		return
	}

	if err := engine.UpdateStatus(ctx, h.redisClient, assignmentID, models.StepQueued); err != nil {
		log.Warn().Err(err).Str("assignmentId", assignmentID).Msg("Failed to update queued status")
	}

	runID := uuid.New().String()

	// Return 202 Accepted immediately
	c.JSON(http.StatusAccepted, models.CheckAssignmentResponse{
		Step:         models.StepQueued,
		AssignmentID: assignmentID,
		RunID:        runID,
	})

	// Process asynchronously
	go h.runBatch(assignmentID, runID)
}

// runBatch drives the batch orchestrator and mirrors progress to
// Redis. Progress callbacks arrive from the sequential batch loop, so
// delivery is already serialized and non-decreasing.
func (h *Handler) runBatch(assignmentID, runID string) {
	defer func() { <-h.checkSem }() // Release semaphore

	ctx, cancel := context.WithTimeout(context.Background(), h.checkTimeout)
	defer cancel()
	defer engine.ReleaseBatchLock(context.Background(), h.redisClient, assignmentID)

	if err := engine.UpdateStatus(ctx, h.redisClient, assignmentID, models.StepRunning); err != nil {
		log.Warn().Err(err).Str("assignmentId", assignmentID).Msg("Failed to update running status")
	}

	start := time.Now()
	summary, err := h.eng.CheckCohort(ctx, h.subsRepo, h.pool, assignmentID, func(current, total int) {
		if err := engine.UpdateProgress(ctx, h.redisClient, assignmentID, current, total); err != nil {
			log.Warn().Err(err).Str("assignmentId", assignmentID).Msg("Failed to update progress")
		}
	})
	if err != nil {
		log.Error().Err(err).
			Str("assignmentId", assignmentID).
			Str("runId", runID).
			Msg("Batch check failed")
		observability.ChecksTotal.WithLabelValues("batch", "failed").Inc()
		if err := engine.UpdateStatus(ctx, h.redisClient, assignmentID, models.StepFailed); err != nil {
			log.Warn().Err(err).Str("assignmentId", assignmentID).Msg("Failed to update failed status")
		}
		return
	}

	observability.ChecksTotal.WithLabelValues("batch", "completed").Inc()
	observability.CheckDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())
	for range summary.Failures {
		observability.BatchFailures.Inc()
	}

	if err := engine.UpdateStatus(ctx, h.redisClient, assignmentID, models.StepCompleted); err != nil {
		log.Warn().Err(err).Str("assignmentId", assignmentID).Msg("Failed to update completed status")
	}

	if len(summary.Failures) > 0 {
		log.Warn().
			Str("assignmentId", assignmentID).
			Str("runId", runID).
			Int("failed", len(summary.Failures)).
			Interface("failures", summary.Failures).
			Msg("Batch check completed with persistence failures")
	}
}

// BatchStatus reports the step and progress of an assignment check.
func (h *Handler) BatchStatus(c *gin.Context) {
	assignmentID := c.Param("id")
	if assignmentID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "assignment id is required",
			Code:  "INVALID_ASSIGNMENT_ID",
		})
		return
	}

	step, current, total, err := engine.ReadStatus(c.Request.Context(), h.redisClient, assignmentID)
	if err != nil {
		log.Error().Err(err).Str("assignmentId", assignmentID).Msg("Failed to read batch status")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to read status",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, models.BatchStatusResponse{
		Step:    step,
		Current: current,
		Total:   total,
	})
}

// Preview estimates similarity between two raw texts without touching
// the store.
func (h *Handler) Preview(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	c.JSON(http.StatusOK, models.PreviewResponse{
		Similarity: h.eng.QuickScore(req.TextA, req.TextB),
	})
}
