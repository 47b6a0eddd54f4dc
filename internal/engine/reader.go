package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/aevon-lab/project-tally/internal/resilience"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// AggregateView is what reads return: the aggregate plus its freshness.
// AsOf is when the value was last confirmed against the store; Stale is
// set when the value is older than the cache TTL and a refresh attempt
// also failed.
type AggregateView struct {
	rating.Aggregate
	AsOf  time.Time `json:"as_of"`
	Stale bool      `json:"stale"`
}

// Reader serves aggregate reads with bounded staleness. Fresh cache hits
// return immediately; misses fetch through the same breaker+retry stack as
// the maintainer, deduplicated per item so a thundering herd of misses
// costs one store read.
//
// Reads never take the per-item write lock: a read racing a concurrent
// recompute may observe the previous version, which is within the
// staleness bound anyway.
type Reader struct {
	store   storage.AggregateStore
	cache   *AggregateCache
	retry   *resilience.RetryExecutor
	breaker *resilience.CircuitBreaker
	group   singleflight.Group
	nowFn   func() time.Time
}

// NewReader creates the read path over the shared cache and resilience
// stack.
func NewReader(
	store storage.AggregateStore,
	cache *AggregateCache,
	retry *resilience.RetryExecutor,
	breaker *resilience.CircuitBreaker,
) *Reader {
	if store == nil {
		panic("engine: store must not be nil")
	}
	if cache == nil {
		panic("engine: cache must not be nil")
	}
	return &Reader{
		store:   store,
		cache:   cache,
		retry:   retry,
		breaker: breaker,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// GetAggregate returns the item's aggregate. Cache hit: returned as-is
// (staleness bounded by the cache TTL). Miss: fetched from the store and
// cached. When the store is unavailable, falls back to the last cached
// value marked stale; with no cached value at all, the error propagates.
func (r *Reader) GetAggregate(ctx context.Context, itemID string) (*AggregateView, error) {
	if agg, fetchedAt, ok := r.cache.Get(itemID); ok {
		return &AggregateView{Aggregate: *agg, AsOf: fetchedAt, Stale: false}, nil
	}

	result, err, _ := r.group.Do(itemID, func() (interface{}, error) {
		// A concurrent flight may have refilled the cache already.
		if agg, fetchedAt, ok := r.cache.Get(itemID); ok {
			return &AggregateView{Aggregate: *agg, AsOf: fetchedAt, Stale: false}, nil
		}
		return r.fetch(ctx, itemID)
	})
	if err == nil {
		return result.(*AggregateView), nil
	}

	if agg, fetchedAt, ok := r.cache.Lookup(itemID); ok {
		slog.Warn("[Reader] Store read failed, serving stale aggregate",
			"item_id", itemID,
			"fetched_at", fetchedAt,
			"error", err,
		)
		return &AggregateView{Aggregate: *agg, AsOf: fetchedAt, Stale: true}, nil
	}
	return nil, fmt.Errorf("get aggregate for %s: %w", itemID, err)
}

func (r *Reader) fetch(ctx context.Context, itemID string) (*AggregateView, error) {
	var agg *rating.Aggregate
	err := r.breaker.Execute(func() error {
		return r.retry.Execute(ctx, "get_aggregate", func(ctx context.Context) error {
			found, err := r.store.GetAggregate(ctx, itemID)
			if errors.Is(err, storage.ErrNotFound) {
				// Item with no aggregate row yet reads as empty, not as
				// an error.
				agg = &rating.Aggregate{
					ItemID:       itemID,
					SampleCount:  0,
					AverageScore: decimal.Zero,
					Version:      0,
					UpdatedAt:    r.nowFn(),
				}
				return nil
			}
			if err != nil {
				return err
			}
			agg = found
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	r.cache.Put(agg)
	return &AggregateView{Aggregate: *agg, AsOf: r.nowFn(), Stale: false}, nil
}
