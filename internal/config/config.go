package config

import (
	"fmt"
	"time"

	"github.com/nityakrishna/veritas/internal/configs/env"
	"github.com/nityakrishna/veritas/internal/engine"
)

// Config holds all configuration for the application
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDBName string

	// Redis
	RedisHost     string
	RedisPassword string

	// JWT
	JWTSecret string
	JWTIssuer string

	// Rate Limiting
	RateLimitRPS float64

	// Concurrency
	MaxConcurrentChecks int

	// Batch runs
	CheckTimeout time.Duration

	// Engine tunables (weights, risk bands, caps)
	Engine engine.Config

	// Logging
	LogLevel string

	// Server
	ServerPort  string
	MetricsPort string
}

func Load() (*Config, error) {
	cfg := &Config{}

	// MongoDB
	cfg.MongoURI = env.GetEnv("MONGO_URI", "")
	cfg.MongoDBName = env.GetEnv("MONGO_DB_NAME", "")

	// Redis
	cfg.RedisHost = env.GetEnv("REDIS_HOST", "localhost:6379")
	cfg.RedisPassword = env.GetEnv("REDIS_PASSWORD", "")

	// JWT
	cfg.JWTSecret = env.GetEnv("JWT_SECRET", "")
	cfg.JWTIssuer = env.GetEnv("JWT_ISSUER", "veritas")

	// Rate Limiting
	cfg.RateLimitRPS = env.GetEnvFloat("RATE_LIMIT_RPS", 10.0)

	// Concurrency
	cfg.MaxConcurrentChecks = env.GetEnvInt("MAX_CONCURRENT_CHECKS", 3)

	// Batch runs
	timeoutMinutes := env.GetEnvInt("CHECK_TIMEOUT_MINUTES", 30)
	cfg.CheckTimeout = time.Duration(timeoutMinutes) * time.Minute

	// Engine tunables: product decisions, kept out of metric logic.
	eng := engine.DefaultConfig()
	eng.Weights.NGram = env.GetEnvFloat("WEIGHT_NGRAM", eng.Weights.NGram)
	eng.Weights.Cosine = env.GetEnvFloat("WEIGHT_COSINE", eng.Weights.Cosine)
	eng.Weights.LCS = env.GetEnvFloat("WEIGHT_LCS", eng.Weights.LCS)
	eng.Weights.Jaccard = env.GetEnvFloat("WEIGHT_JACCARD", eng.Weights.Jaccard)
	eng.Weights.Sentence = env.GetEnvFloat("WEIGHT_SENTENCE", eng.Weights.Sentence)
	eng.Weights.WordFrequency = env.GetEnvFloat("WEIGHT_WORD_FREQUENCY", eng.Weights.WordFrequency)
	eng.RiskThresholds.Low = env.GetEnvFloat("RISK_LOW", eng.RiskThresholds.Low)
	eng.RiskThresholds.Medium = env.GetEnvFloat("RISK_MEDIUM", eng.RiskThresholds.Medium)
	eng.RiskThresholds.High = env.GetEnvFloat("RISK_HIGH", eng.RiskThresholds.High)
	eng.RiskThresholds.Critical = env.GetEnvFloat("RISK_CRITICAL", eng.RiskThresholds.Critical)
	eng.LCSMaxTokens = env.GetEnvInt("LCS_MAX_TOKENS", eng.LCSMaxTokens)
	eng.SentenceMatchThreshold = env.GetEnvFloat("SENTENCE_MATCH_THRESHOLD", eng.SentenceMatchThreshold)
	eng.MinSimilarityPercent = env.GetEnvFloat("MIN_SIMILARITY_PERCENT", eng.MinSimilarityPercent)
	eng.MaxSimilarMatches = env.GetEnvInt("MAX_SIMILAR_MATCHES", eng.MaxSimilarMatches)
	eng.MaxMatchedPhrases = env.GetEnvInt("MAX_MATCHED_PHRASES", eng.MaxMatchedPhrases)
	cfg.Engine = eng

	// Logging
	cfg.LogLevel = env.GetEnv("LOG_LEVEL", "info")

	// Server
	cfg.ServerPort = env.GetEnv("SERVER_PORT", "8080")
	cfg.MetricsPort = env.GetEnv("METRICS_PORT", "2112")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.MongoDBName == "" {
		return fmt.Errorf("MONGO_DB_NAME is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MaxConcurrentChecks <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_CHECKS must be greater than 0")
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("CHECK_TIMEOUT_MINUTES must be greater than 0")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}
	return nil
}
