package expr

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheSize is used when NewCache is given no size.
const DefaultCacheSize = 512

// Cache memoizes Trace results by expression text. Evaluation is pure, so a
// cached Analysis is reused as is and must not be modified by callers.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]*cacheEntry
	order   []uint64
	size    int

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	analysis *Analysis
	err      error
}

// NewCache creates a cache holding at most size analyses, evicting the
// oldest first.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		entries: make(map[uint64]*cacheEntry),
		size:    size,
	}
}

// Trace is Trace with memoization.
func (c *Cache) Trace(infix string) (*Analysis, error) {
	key := xxhash.Sum64String(infix)

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && e.analysis.Input == infix {
		c.hits.Add(1)
		return e.analysis, e.err
	}

	c.misses.Add(1)
	a, err := Trace(infix)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
		if len(c.order) > c.size {
			delete(c.entries, c.order[0])
			c.order = c.order[1:]
		}
	}
	c.entries[key] = &cacheEntry{analysis: a, err: err}
	return a, err
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached analyses.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
