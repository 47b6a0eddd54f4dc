package engine

import (
	"testing"
	"time"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testAggregate(itemID string, version int64) *rating.Aggregate {
	return &rating.Aggregate{
		ItemID:       itemID,
		SampleCount:  3,
		AverageScore: decimal.RequireFromString("4.33"),
		Version:      version,
		UpdatedAt:    time.Now().UTC(),
	}
}

func TestCacheGetFreshEntry(t *testing.T) {
	cache := NewAggregateCache(time.Minute)
	cache.Put(testAggregate("item-1", 1))

	agg, fetchedAt, ok := cache.Get("item-1")
	require.True(t, ok)
	require.Equal(t, "item-1", agg.ItemID)
	require.Equal(t, int64(1), agg.Version)
	require.False(t, fetchedAt.IsZero())
}

func TestCacheGetMiss(t *testing.T) {
	cache := NewAggregateCache(time.Minute)

	_, _, ok := cache.Get("absent")
	require.False(t, ok)
}

func TestCacheExpiryKeepsStaleForLookup(t *testing.T) {
	cache := NewAggregateCache(time.Minute)
	cache.Put(testAggregate("item-1", 2))

	// Advance the clock past the TTL.
	now := time.Now().UTC()
	cache.nowFn = func() time.Time { return now.Add(2 * time.Minute) }

	_, _, ok := cache.Get("item-1")
	require.False(t, ok, "expired entry must not be served as fresh")

	agg, _, ok := cache.Lookup("item-1")
	require.True(t, ok, "expired entry must stay available for stale reads")
	require.Equal(t, int64(2), agg.Version)
	require.Equal(t, 1, cache.Len())
}

func TestCacheInvalidateRemovesEntry(t *testing.T) {
	cache := NewAggregateCache(time.Minute)
	cache.Put(testAggregate("item-1", 1))
	cache.Invalidate("item-1")

	_, _, ok := cache.Lookup("item-1")
	require.False(t, ok)
	require.Equal(t, 0, cache.Len())
}

func TestCachePutResetsAge(t *testing.T) {
	cache := NewAggregateCache(time.Minute)
	cache.Put(testAggregate("item-1", 1))

	now := time.Now().UTC()
	cache.nowFn = func() time.Time { return now.Add(2 * time.Minute) }

	// Refreshing the entry makes it fresh again at the new clock.
	cache.Put(testAggregate("item-1", 2))
	agg, _, ok := cache.Get("item-1")
	require.True(t, ok)
	require.Equal(t, int64(2), agg.Version)
}

func TestCacheGetReturnsCopy(t *testing.T) {
	cache := NewAggregateCache(time.Minute)
	cache.Put(testAggregate("item-1", 1))

	agg, _, ok := cache.Get("item-1")
	require.True(t, ok)
	agg.SampleCount = 999

	again, _, _ := cache.Get("item-1")
	require.Equal(t, int64(3), again.SampleCount, "mutating a returned aggregate must not affect the cache")
}
