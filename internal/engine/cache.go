package engine

import (
	"sync"
	"time"

	"github.com/aevon-lab/project-tally/internal/core/rating"
)

// AggregateCache holds the last known-good aggregate per item with a TTL.
// Expired entries are retained until overwritten or invalidated so the read
// path can fall back to a stale value when the store is unreachable.
type AggregateCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	nowFn   func() time.Time
}

type cacheEntry struct {
	agg       rating.Aggregate
	fetchedAt time.Time
}

// NewAggregateCache creates a cache with the given freshness TTL.
func NewAggregateCache(ttl time.Duration) *AggregateCache {
	return &AggregateCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Get returns the cached aggregate only while it is fresh
// (now - fetchedAt < ttl). Returns a copy.
func (c *AggregateCache) Get(itemID string) (*rating.Aggregate, time.Time, bool) {
	c.mu.RLock()
	entry, exists := c.entries[itemID]
	c.mu.RUnlock()

	if !exists || c.nowFn().Sub(entry.fetchedAt) >= c.ttl {
		return nil, time.Time{}, false
	}
	agg := entry.agg
	return &agg, entry.fetchedAt, true
}

// Lookup returns the cached aggregate regardless of age, for callers that
// opted into stale serving. The second return is when it was fetched.
func (c *AggregateCache) Lookup(itemID string) (*rating.Aggregate, time.Time, bool) {
	c.mu.RLock()
	entry, exists := c.entries[itemID]
	c.mu.RUnlock()

	if !exists {
		return nil, time.Time{}, false
	}
	agg := entry.agg
	return &agg, entry.fetchedAt, true
}

// Put overwrites the entry for the aggregate's item and resets its age.
func (c *AggregateCache) Put(agg *rating.Aggregate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[agg.ItemID] = cacheEntry{agg: *agg, fetchedAt: c.nowFn()}
}

// Invalidate removes the entry immediately, forcing the next read to hit
// the store.
func (c *AggregateCache) Invalidate(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, itemID)
}

// Len reports the number of retained entries (fresh or stale).
func (c *AggregateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
