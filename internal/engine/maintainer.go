package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/aevon-lab/project-tally/internal/resilience"
	"github.com/shopspring/decimal"
)

const defaultMaxConflictRetries = 3

// ErrMaintenanceFailed is returned when an aggregate could not be brought
// up to date after all retries, or while the circuit is open. The caller
// decides whether to fail its own request or accept eventual consistency;
// the failed item stays marked dirty for the reconciler either way.
var ErrMaintenanceFailed = errors.New("aggregate maintenance failed")

// Maintainer keeps each item's persisted aggregate in step with its
// reviews. On every review mutation it recomputes the aggregate from
// authoritative store totals — never a delta — persists it behind an
// optimistic version check, and refreshes the cache.
//
// Recomputing from totals is what makes the retry loop safe: replaying the
// read changes nothing, and a write that half-failed is simply recomputed.
type Maintainer struct {
	store   storage.AggregateStore
	cache   *AggregateCache
	retry   *resilience.RetryExecutor
	breaker *resilience.CircuitBreaker
	locks   *keyedMutex

	maxConflictRetries int
	nowFn              func() time.Time

	// dirty tracks items whose last maintenance failed, for the reconciler.
	dirtyMu sync.Mutex
	dirty   map[string]rating.MutationOp
}

// NewMaintainer wires the recompute loop. maxConflictRetries bounds how
// often a version conflict restarts the whole recompute (0 uses the
// default); it is an outer bound separate from the store-level retries.
func NewMaintainer(
	store storage.AggregateStore,
	cache *AggregateCache,
	retry *resilience.RetryExecutor,
	breaker *resilience.CircuitBreaker,
	maxConflictRetries int,
) *Maintainer {
	if store == nil {
		panic("engine: store must not be nil")
	}
	if cache == nil {
		panic("engine: cache must not be nil")
	}
	if retry == nil {
		panic("engine: retry executor must not be nil")
	}
	if breaker == nil {
		panic("engine: circuit breaker must not be nil")
	}
	if maxConflictRetries <= 0 {
		maxConflictRetries = defaultMaxConflictRetries
	}
	return &Maintainer{
		store:              store,
		cache:              cache,
		retry:              retry,
		breaker:            breaker,
		locks:              newKeyedMutex(0),
		maxConflictRetries: maxConflictRetries,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		dirty: make(map[string]rating.MutationOp),
	}
}

// OnChildMutation brings the item's aggregate up to date after a review
// mutation. Mutations for the same item are serialized through a per-item
// lock; different items proceed fully in parallel. When this returns nil,
// the persisted aggregate reflects every mutation accepted before the call.
func (m *Maintainer) OnChildMutation(ctx context.Context, itemID string, op rating.MutationOp) error {
	if err := m.locks.Lock(ctx, itemID); err != nil {
		m.markDirty(itemID, op)
		return fmt.Errorf("%w: item %s: acquire lock: %w", ErrMaintenanceFailed, itemID, err)
	}
	defer m.locks.Unlock(itemID)

	// The cached value is wrong from this moment on.
	m.cache.Invalidate(itemID)

	var lastErr error
	for attempt := 1; attempt <= m.maxConflictRetries; attempt++ {
		agg, err := m.recomputeAndPersist(ctx, itemID)
		if err == nil {
			m.cache.Put(agg)
			m.clearDirty(itemID)
			slog.Debug("[Maintainer] Aggregate updated",
				"item_id", itemID,
				"op", op,
				"sample_count", agg.SampleCount,
				"average_score", agg.AverageScore,
				"version", agg.Version,
			)
			return nil
		}

		if errors.Is(err, storage.ErrVersionConflict) {
			// Another writer landed between our read and write. Re-read
			// and recompute the whole thing; retrying just the write
			// would persist totals we know are stale.
			slog.Warn("[Maintainer] Version conflict, recomputing",
				"item_id", itemID,
				"attempt", attempt,
				"max_attempts", m.maxConflictRetries,
			)
			lastErr = err
			continue
		}

		if errors.Is(err, rating.ErrInvalidAggregateState) {
			slog.Error("[Maintainer] Invalid aggregate state — likely a bug, not retrying",
				"item_id", itemID,
				"op", op,
				"error", err,
			)
			return err
		}

		m.markDirty(itemID, op)
		slog.Error("[Maintainer] Aggregate maintenance failed",
			"item_id", itemID,
			"op", op,
			"error", err,
		)
		return fmt.Errorf("%w: item %s: %w", ErrMaintenanceFailed, itemID, err)
	}

	m.markDirty(itemID, op)
	return fmt.Errorf("%w: item %s: contention exhausted %d recompute attempts: %w",
		ErrMaintenanceFailed, itemID, m.maxConflictRetries, lastErr)
}

// recomputeAndPersist performs one full read-recompute-write cycle. Each
// store call runs inside the circuit breaker wrapping the retry executor.
// A failed read aborts before anything is written; a guessed or partial
// aggregate is never persisted.
func (m *Maintainer) recomputeAndPersist(ctx context.Context, itemID string) (*rating.Aggregate, error) {
	var prevVersion int64
	err := m.breaker.Execute(func() error {
		return m.retry.Execute(ctx, "get_aggregate", func(ctx context.Context) error {
			prev, err := m.store.GetAggregate(ctx, itemID)
			if errors.Is(err, storage.ErrNotFound) {
				prevVersion = 0 // first write creates the row
				return nil
			}
			if err != nil {
				return err
			}
			prevVersion = prev.Version
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read current version: %w", err)
	}

	var (
		count int64
		sum   decimal.Decimal
	)
	err = m.breaker.Execute(func() error {
		return m.retry.Execute(ctx, "count_and_sum", func(ctx context.Context) error {
			c, s, err := m.store.ComputeCountAndSum(ctx, itemID)
			if err != nil {
				return err
			}
			count, sum = c, s
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("compute totals: %w", err)
	}

	agg, err := rating.AggregateFromTotals(itemID, count, sum, prevVersion+1, m.nowFn())
	if err != nil {
		return nil, err
	}

	err = m.breaker.Execute(func() error {
		return m.retry.Execute(ctx, "write_aggregate", func(ctx context.Context) error {
			return m.store.WriteAggregate(ctx, agg, prevVersion)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("persist aggregate: %w", err)
	}
	return agg, nil
}

func (m *Maintainer) markDirty(itemID string, op rating.MutationOp) {
	m.dirtyMu.Lock()
	defer m.dirtyMu.Unlock()
	m.dirty[itemID] = op
}

func (m *Maintainer) clearDirty(itemID string) {
	m.dirtyMu.Lock()
	defer m.dirtyMu.Unlock()
	delete(m.dirty, itemID)
}

// DirtyItems snapshots the items whose last maintenance failed.
func (m *Maintainer) DirtyItems() map[string]rating.MutationOp {
	m.dirtyMu.Lock()
	defer m.dirtyMu.Unlock()
	snapshot := make(map[string]rating.MutationOp, len(m.dirty))
	for id, op := range m.dirty {
		snapshot[id] = op
	}
	return snapshot
}
