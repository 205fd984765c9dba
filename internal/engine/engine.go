// Package engine implements the multi-metric textual similarity engine
// that compares student submissions within one assignment's cohort.
// The metric core is pure: it holds no shared mutable state and is
// deterministic for identical inputs, so pairwise comparisons are safe
// to run in parallel.
package engine

// Engine evaluates submission pairs and assembles cohort reports.
type Engine struct {
	cfg Config
}

// New creates an engine. The config must already be validated.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
