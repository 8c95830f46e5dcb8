package extractor

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a cheap, change-sensitive signature of content.
func Fingerprint(content []byte) uint64 {
	return xxhash.Sum64(content)
}

type cacheKey struct {
	path        string
	fingerprint uint64
}

// ParseCache memoizes extraction results keyed by (path, fingerprint).
// A changed fingerprint produces a new key, so stale entries for the old
// content are simply never hit again; the working set is bounded by the
// number of files scanned in one invocation, with an optional entry cap.
//
// Safe for concurrent use. Concurrent requests for the same uncached key
// may recompute redundantly; the first stored result wins.
type ParseCache struct {
	mu         sync.RWMutex
	entries    map[cacheKey]*Result
	maxEntries int
}

// NewParseCache creates a cache. maxEntries <= 0 means unbounded.
func NewParseCache(maxEntries int) *ParseCache {
	return &ParseCache{
		entries:    make(map[cacheKey]*Result),
		maxEntries: maxEntries,
	}
}

// GetOrCompute returns the cached result for (path, fingerprint), computing
// and storing it on a miss. compute runs outside the lock.
func (c *ParseCache) GetOrCompute(path string, fingerprint uint64, compute func() *Result) *Result {
	key := cacheKey{path: path, fingerprint: fingerprint}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	result := compute()

	c.mu.Lock()
	defer c.mu.Unlock()
	if stored, ok := c.entries[key]; ok {
		// Lost the race; keep the first stored result.
		return stored
	}
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		return result
	}
	c.entries[key] = result
	return result
}

// Len returns the number of cached entries.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
