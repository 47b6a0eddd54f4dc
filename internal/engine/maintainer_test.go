package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/aevon-lab/project-tally/internal/resilience"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory AggregateStore with injectable failures. Scores
// are the source of truth; ComputeCountAndSum derives totals from them the
// way the SQL adapter derives them from review rows.
type fakeStore struct {
	mu     sync.Mutex
	scores map[string][]decimal.Decimal
	rows   map[string]rating.Aggregate

	getCalls     int
	computeCalls int
	writeCalls   int

	// Each counter fails that many upcoming calls with a transient error
	// before letting calls through again.
	failGets     int
	failComputes int
	failWrites   int

	// conflictWrites forces that many upcoming writes to report a version
	// conflict regardless of the version check.
	conflictWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		scores: make(map[string][]decimal.Decimal),
		rows:   make(map[string]rating.Aggregate),
	}
}

func transientErr() error {
	return fmt.Errorf("%w: connection reset by peer", storage.ErrTransient)
}

func (s *fakeStore) addScore(itemID string, score int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[itemID] = append(s.scores[itemID], decimal.NewFromInt(score))
}

func (s *fakeStore) setScores(itemID string, scores ...decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[itemID] = scores
}

func (s *fakeStore) GetAggregate(_ context.Context, itemID string) (*rating.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.failGets > 0 {
		s.failGets--
		return nil, transientErr()
	}
	row, exists := s.rows[itemID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	out := row
	return &out, nil
}

func (s *fakeStore) ComputeCountAndSum(_ context.Context, itemID string) (int64, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.computeCalls++
	if s.failComputes > 0 {
		s.failComputes--
		return 0, decimal.Zero, transientErr()
	}
	sum := decimal.Zero
	for _, score := range s.scores[itemID] {
		sum = sum.Add(score)
	}
	return int64(len(s.scores[itemID])), sum, nil
}

func (s *fakeStore) WriteAggregate(_ context.Context, agg *rating.Aggregate, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeCalls++
	if s.failWrites > 0 {
		s.failWrites--
		return transientErr()
	}
	if s.conflictWrites > 0 {
		s.conflictWrites--
		return storage.ErrVersionConflict
	}
	row, exists := s.rows[agg.ItemID]
	switch {
	case !exists && expectedVersion != 0:
		return storage.ErrVersionConflict
	case exists && row.Version != expectedVersion:
		return storage.ErrVersionConflict
	}
	s.rows[agg.ItemID] = *agg
	return nil
}

func (s *fakeStore) row(t *testing.T, itemID string) rating.Aggregate {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	row, exists := s.rows[itemID]
	require.True(t, exists, "no aggregate row for %s", itemID)
	return row
}

func newTestResilience(maxAttempts int) (*resilience.RetryExecutor, *resilience.CircuitBreaker) {
	retry := resilience.NewRetryExecutor(resilience.RetryPolicy{
		MaxAttempts:   maxAttempts,
		BaseDelay:     time.Millisecond,
		BackoffFactor: 2.0,
		JitterRatio:   0.1,
		IsRetryable:   IsRetryableStoreError,
	})
	breaker := resilience.NewCircuitBreaker("test-store", resilience.CircuitPolicy{
		FailureThreshold: 100, // high enough to stay out of the way
		CooldownPeriod:   time.Minute,
		IsFailure:        IsStoreFailure,
	})
	return retry, breaker
}

func newTestMaintainer(store storage.AggregateStore, maxAttempts int) (*Maintainer, *AggregateCache) {
	retry, breaker := newTestResilience(maxAttempts)
	cache := NewAggregateCache(time.Minute)
	return NewMaintainer(store, cache, retry, breaker, 3), cache
}

func TestMaintainerSequentialInserts(t *testing.T) {
	store := newFakeStore()
	m, _ := newTestMaintainer(store, 3)
	ctx := context.Background()

	steps := []struct {
		score     int64
		wantCount int64
		wantAvg   string
	}{
		{score: 5, wantCount: 1, wantAvg: "5"},
		{score: 3, wantCount: 2, wantAvg: "4"},
		{score: 4, wantCount: 3, wantAvg: "4"},
	}

	for i, step := range steps {
		store.addScore("item-1", step.score)
		require.NoError(t, m.OnChildMutation(ctx, "item-1", rating.OpInsert))

		row := store.row(t, "item-1")
		require.Equal(t, step.wantCount, row.SampleCount)
		require.True(t, row.AverageScore.Equal(decimal.RequireFromString(step.wantAvg)),
			"step %d: average %s, want %s", i, row.AverageScore, step.wantAvg)
		require.Equal(t, int64(i+1), row.Version)
	}
}

func TestMaintainerRetriesTransientComputeFailures(t *testing.T) {
	store := newFakeStore()
	store.setScores("item-1", decimal.NewFromInt(5), decimal.NewFromInt(4))
	store.failComputes = 2 // first two attempts fail, third succeeds

	m, _ := newTestMaintainer(store, 3)
	require.NoError(t, m.OnChildMutation(context.Background(), "item-1", rating.OpInsert))

	require.Equal(t, 3, store.computeCalls)
	row := store.row(t, "item-1")
	require.Equal(t, int64(2), row.SampleCount)
	require.True(t, row.AverageScore.Equal(decimal.RequireFromString("4.5")),
		"average %s, want 4.5", row.AverageScore)
}

func TestMaintainerDeleteToZeroState(t *testing.T) {
	store := newFakeStore()
	m, _ := newTestMaintainer(store, 3)
	ctx := context.Background()

	store.addScore("item-1", 4)
	require.NoError(t, m.OnChildMutation(ctx, "item-1", rating.OpInsert))

	store.setScores("item-1") // last review deleted
	require.NoError(t, m.OnChildMutation(ctx, "item-1", rating.OpDelete))

	row := store.row(t, "item-1")
	require.Equal(t, int64(0), row.SampleCount)
	require.True(t, row.AverageScore.IsZero(), "average %s, want 0", row.AverageScore)
	require.Equal(t, int64(2), row.Version)
}

func TestMaintainerConcurrentMutationsLoseNoUpdates(t *testing.T) {
	const n = 32

	store := newFakeStore()
	m, _ := newTestMaintainer(store, 3)

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(score int64) {
			defer wg.Done()
			store.addScore("item-1", score%5+1)
			errs <- m.OnChildMutation(context.Background(), "item-1", rating.OpInsert)
		}(int64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	row := store.row(t, "item-1")
	require.Equal(t, int64(n), row.SampleCount)
	require.Equal(t, int64(n), row.Version)
	require.Empty(t, m.DirtyItems())
}

func TestMaintainerVersionConflictTriggersRecompute(t *testing.T) {
	store := newFakeStore()
	store.addScore("item-1", 3)
	store.conflictWrites = 1

	m, _ := newTestMaintainer(store, 3)
	require.NoError(t, m.OnChildMutation(context.Background(), "item-1", rating.OpInsert))

	// One conflicted write, one clean recompute-and-write.
	require.Equal(t, 2, store.writeCalls)
	require.Equal(t, 2, store.computeCalls)
	require.Equal(t, int64(1), store.row(t, "item-1").SampleCount)
}

func TestMaintainerConflictExhaustionFails(t *testing.T) {
	store := newFakeStore()
	store.addScore("item-1", 3)
	store.conflictWrites = 10 // more than maxConflictRetries

	m, _ := newTestMaintainer(store, 3)
	err := m.OnChildMutation(context.Background(), "item-1", rating.OpInsert)
	require.ErrorIs(t, err, ErrMaintenanceFailed)
	require.Equal(t, 3, store.writeCalls)
	require.Contains(t, m.DirtyItems(), "item-1")
}

func TestMaintainerPersistentFailureMarksDirtyAndInvalidatesCache(t *testing.T) {
	store := newFakeStore()
	store.addScore("item-1", 5)

	m, cache := newTestMaintainer(store, 2)
	ctx := context.Background()

	require.NoError(t, m.OnChildMutation(ctx, "item-1", rating.OpInsert))
	_, _, cached := cache.Get("item-1")
	require.True(t, cached)

	store.addScore("item-1", 1)
	store.failWrites = 10 // beyond maxAttempts, every recompute fails

	err := m.OnChildMutation(ctx, "item-1", rating.OpUpdate)
	require.ErrorIs(t, err, ErrMaintenanceFailed)

	// The stale cached value must not survive a failed maintenance pass.
	_, _, cached = cache.Get("item-1")
	require.False(t, cached)
	require.Equal(t, rating.OpUpdate, m.DirtyItems()["item-1"])

	// The persisted row still holds the last consistent state.
	require.Equal(t, int64(1), store.row(t, "item-1").SampleCount)
}

func TestMaintainerRecoveryClearsDirty(t *testing.T) {
	store := newFakeStore()
	store.addScore("item-1", 5)
	store.failWrites = 10

	m, cache := newTestMaintainer(store, 2)
	ctx := context.Background()

	require.Error(t, m.OnChildMutation(ctx, "item-1", rating.OpInsert))
	require.Contains(t, m.DirtyItems(), "item-1")

	store.mu.Lock()
	store.failWrites = 0
	store.mu.Unlock()

	require.NoError(t, m.OnChildMutation(ctx, "item-1", rating.OpInsert))
	require.Empty(t, m.DirtyItems())

	agg, _, cached := cache.Get("item-1")
	require.True(t, cached)
	require.Equal(t, int64(1), agg.SampleCount)
}
