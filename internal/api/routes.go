package api

import (
	"github.com/nityakrishna/veritas/internal/config"
	"github.com/nityakrishna/veritas/internal/engine"
	redisInfra "github.com/nityakrishna/veritas/internal/infra/redis"
	"github.com/nityakrishna/veritas/internal/repository"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	cfg *config.Config,
	subsRepo *repository.SubmissionsRepository,
	eng *engine.Engine,
	pool *engine.WorkerPool,
	redisClient *redisInfra.Client,
) *gin.Engine {
	router := gin.Default()

	handler := NewHandler(cfg, subsRepo, eng, pool, redisClient)
	rateLimiter := NewRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS*2))

	router.Use(ErrorHandlerMiddleware())

	// Health endpoint (no auth)
	router.GET("/health", handler.Health)

	// API routes (with auth and rate limiting)
	api := router.Group("/api/v1")
	api.Use(JWTAuthMiddleware(cfg.JWTSecret))
	api.Use(RateLimitMiddleware(rateLimiter))
	{
		api.POST("/submissions/check", handler.CheckSubmission)
		api.POST("/assignments/:id/check", handler.CheckAssignment)
		api.GET("/assignments/:id/check/status", handler.BatchStatus)
		api.POST("/similarity/preview", handler.Preview)
	}

	return router
}
