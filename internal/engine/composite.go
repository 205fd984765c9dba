package engine

import (
	"fmt"
	"math"

	"github.com/nityakrishna/veritas/internal/models"
)

// Weights combines the six metric scores into one composite score.
// They favor structural copying (n-grams, cosine, LCS) over
// coincidental lexical overlap and must sum to 1.
type Weights struct {
	NGram         float64
	Cosine        float64
	LCS           float64
	Jaccard       float64
	Sentence      float64
	WordFrequency float64
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{
		NGram:         0.20,
		Cosine:        0.20,
		LCS:           0.20,
		Jaccard:       0.15,
		Sentence:      0.15,
		WordFrequency: 0.10,
	}
}

// Sum returns the total weight, used for validation.
func (w Weights) Sum() float64 {
	return w.NGram + w.Cosine + w.LCS + w.Jaccard + w.Sentence + w.WordFrequency
}

// RiskThresholds are the inclusive lower bounds of each risk band
// above "none".
type RiskThresholds struct {
	Low      float64
	Medium   float64
	High     float64
	Critical float64
}

// DefaultRiskThresholds returns the production risk bands.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{Low: 20, Medium: 40, High: 60, Critical: 80}
}

// Config carries every tunable of the engine. Values are product
// decisions, not invariants; they come from configuration so they can
// be adjusted without touching metric logic.
type Config struct {
	Weights        Weights
	RiskThresholds RiskThresholds

	// LCSMaxTokens truncates each side before the LCS table is built.
	LCSMaxTokens int
	// SentenceMatchThreshold is the minimum normalized edit
	// similarity for a sentence to count as matched, in [0,1].
	SentenceMatchThreshold float64
	// MinSimilarityPercent is the inclusion floor for ranked matches.
	MinSimilarityPercent float64
	// MaxSimilarMatches caps the ranked match list.
	MaxSimilarMatches int
	// MaxMatchedPhrases caps extracted evidence phrases per pair.
	MaxMatchedPhrases int
	// MaxPhraseTokens is the largest n-gram size tried for evidence.
	MaxPhraseTokens int
	// RichnessShiftDelta flags documents whose halves differ in
	// vocabulary richness by more than this many points.
	RichnessShiftDelta float64
	// UniformSentenceFraction flags documents where more than this
	// fraction of sentences share a near-identical token count.
	UniformSentenceFraction float64
}

// DefaultConfig returns the production engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights:                 DefaultWeights(),
		RiskThresholds:          DefaultRiskThresholds(),
		LCSMaxTokens:            2000,
		SentenceMatchThreshold:  0.80,
		MinSimilarityPercent:    15,
		MaxSimilarMatches:       10,
		MaxMatchedPhrases:       5,
		MaxPhraseTokens:         6,
		RichnessShiftDelta:      25,
		UniformSentenceFraction: 0.60,
	}
}

// Validate rejects configurations the scorer cannot work with.
func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("metric weights must sum to 1.0, got %.4f", c.Weights.Sum())
	}
	t := c.RiskThresholds
	if !(t.Low < t.Medium && t.Medium < t.High && t.High < t.Critical) {
		return fmt.Errorf("risk thresholds must be strictly ascending")
	}
	if c.LCSMaxTokens <= 0 {
		return fmt.Errorf("LCSMaxTokens must be positive")
	}
	if c.SentenceMatchThreshold <= 0 || c.SentenceMatchThreshold > 1 {
		return fmt.Errorf("SentenceMatchThreshold must be in (0,1]")
	}
	if c.MaxSimilarMatches <= 0 || c.MaxMatchedPhrases <= 0 {
		return fmt.Errorf("match caps must be positive")
	}
	return nil
}

// PairScores holds the six raw metric scores and their weighted
// composite for one unordered submission pair.
type PairScores struct {
	NGram         float64
	Cosine        float64
	LCS           float64
	Jaccard       float64
	Sentence      float64
	WordFrequency float64
	Composite     float64
}

// Combine produces the weighted composite, rounded to the nearest
// integer for display.
func Combine(s PairScores, w Weights) float64 {
	overall := s.NGram*w.NGram +
		s.Cosine*w.Cosine +
		s.LCS*w.LCS +
		s.Jaccard*w.Jaccard +
		s.Sentence*w.Sentence +
		s.WordFrequency*w.WordFrequency
	return clampScore(math.Round(overall))
}

// RiskLevelFor maps a composite score to its risk band. The level is
// always derived from the score, never set independently.
func RiskLevelFor(score float64, t RiskThresholds) models.RiskLevel {
	switch {
	case score >= t.Critical:
		return models.RiskCritical
	case score >= t.High:
		return models.RiskHigh
	case score >= t.Medium:
		return models.RiskMedium
	case score >= t.Low:
		return models.RiskLow
	default:
		return models.RiskNone
	}
}

// clampScore bounds a score to [0,100] against float drift.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
