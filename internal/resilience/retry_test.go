package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("connection reset")

func fastPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   maxAttempts,
		BaseDelay:     time.Millisecond,
		BackoffFactor: 2.0,
		JitterRatio:   0.2,
		IsRetryable:   func(err error) bool { return errors.Is(err, errFlaky) },
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	exec := NewRetryExecutor(fastPolicy(3))

	calls := 0
	err := exec.Execute(context.Background(), "read", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetry_ExhaustionWrapsLastError(t *testing.T) {
	exec := NewRetryExecutor(fastPolicy(3))

	calls := 0
	err := exec.Execute(context.Background(), "read", func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	require.ErrorIs(t, err, ErrRetriesExhausted)
	require.ErrorIs(t, err, errFlaky)
	require.Equal(t, 3, calls)
}

func TestRetry_NonRetryablePropagatesImmediately(t *testing.T) {
	exec := NewRetryExecutor(fastPolicy(5))
	fatal := errors.New("unique violation")

	calls := 0
	err := exec.Execute(context.Background(), "write", func(ctx context.Context) error {
		calls++
		return fatal
	})
	require.ErrorIs(t, err, fatal)
	require.NotErrorIs(t, err, ErrRetriesExhausted)
	require.Equal(t, 1, calls)
}

func TestRetry_SingleAttemptPolicy(t *testing.T) {
	exec := NewRetryExecutor(fastPolicy(1))

	calls := 0
	err := exec.Execute(context.Background(), "read", func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	require.ErrorIs(t, err, ErrRetriesExhausted)
	require.Equal(t, 1, calls)
}

func TestRetry_ContextDeadlineAbortsLoop(t *testing.T) {
	policy := fastPolicy(100)
	policy.BaseDelay = 50 * time.Millisecond
	exec := NewRetryExecutor(policy)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	err := exec.Execute(ctx, "read", func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	require.ErrorIs(t, err, ErrTimeout)
	require.Less(t, calls, 100)
}

func TestRetryPolicy_NormalizedDefaults(t *testing.T) {
	p := RetryPolicy{}.normalized()
	require.Equal(t, 1, p.MaxAttempts)
	require.Positive(t, p.BaseDelay)
	require.GreaterOrEqual(t, p.BackoffFactor, 1.0)
	require.NotNil(t, p.IsRetryable)
}
