package engine

import "sync"

// PairCache memoizes pair comparisons within one batch run so the
// triangular cohort matrix is computed once per unordered pair. It is
// an internal optimization only: cached and fresh results are
// identical because every comparison is symmetric.
type PairCache struct {
	mu      sync.RWMutex
	entries map[string]PairComparison
}

// NewPairCache creates an empty cache. One cache belongs to one batch
// run; it is never shared across runs, so content changes between runs
// cannot leak stale scores.
func NewPairCache() *PairCache {
	return &PairCache{entries: make(map[string]PairComparison)}
}

// pairKey orders the two ids so both directions share one entry.
func pairKey(idA, idB string) string {
	if idA < idB {
		return idA + ":" + idB
	}
	return idB + ":" + idA
}

// Get returns the cached comparison for an unordered pair.
func (c *PairCache) Get(idA, idB string) (PairComparison, bool) {
	if c == nil {
		return PairComparison{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	comparison, ok := c.entries[pairKey(idA, idB)]
	return comparison, ok
}

// Put stores a comparison for an unordered pair.
func (c *PairCache) Put(idA, idB string, comparison PairComparison) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pairKey(idA, idB)] = comparison
}
