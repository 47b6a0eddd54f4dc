package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls the retry schedule for one operation class.
type RetryPolicy struct {
	// MaxAttempts is the total number of invocations, first try included.
	MaxAttempts int

	// BaseDelay is the sleep before the first retry.
	BaseDelay time.Duration

	// BackoffFactor multiplies the delay after each failed attempt.
	BackoffFactor float64

	// JitterRatio scales each delay by a random factor in
	// [1-JitterRatio, 1+JitterRatio] to avoid retry stampedes.
	JitterRatio float64

	// IsRetryable decides whether an error is worth another attempt.
	// Non-retryable errors propagate immediately without sleeping.
	IsRetryable func(error) bool
}

func (p RetryPolicy) normalized() RetryPolicy {
	n := p
	if n.MaxAttempts < 1 {
		n.MaxAttempts = 1
	}
	if n.BaseDelay <= 0 {
		n.BaseDelay = 100 * time.Millisecond
	}
	if n.BackoffFactor < 1 {
		n.BackoffFactor = 2.0
	}
	if n.JitterRatio < 0 || n.JitterRatio >= 1 {
		n.JitterRatio = 0.2
	}
	if n.IsRetryable == nil {
		n.IsRetryable = func(error) bool { return true }
	}
	return n
}

// RetryExecutor wraps a single store operation with bounded retries and
// exponential backoff plus jitter.
//
// Callers must ensure the wrapped operation is idempotent or safely
// re-computable; the executor only bounds how often it runs.
type RetryExecutor struct {
	policy RetryPolicy
}

// NewRetryExecutor creates an executor for one retry policy.
func NewRetryExecutor(policy RetryPolicy) *RetryExecutor {
	return &RetryExecutor{policy: policy.normalized()}
}

// Execute runs op, retrying retryable failures per the policy. The whole
// loop aborts early when ctx expires, returning ErrTimeout. When attempts
// run out the last error is returned wrapped in ErrRetriesExhausted.
func (e *RetryExecutor) Execute(ctx context.Context, name string, op func(ctx context.Context) error) error {
	sched := backoff.NewExponentialBackOff()
	sched.InitialInterval = e.policy.BaseDelay
	sched.Multiplier = e.policy.BackoffFactor
	sched.RandomizationFactor = e.policy.JitterRatio
	sched.MaxElapsedTime = 0 // attempts are the bound, not wall time
	sched.Reset()

	attempts := 0
	wrapped := func() error {
		attempts++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !e.policy.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		if attempts < e.policy.MaxAttempts {
			slog.Warn("[Retry] Attempt failed, will retry",
				"operation", name,
				"attempt", attempts,
				"max_attempts", e.policy.MaxAttempts,
				"error", err,
			)
		}
		return err
	}

	err := backoff.Retry(wrapped, backoff.WithContext(
		backoff.WithMaxRetries(sched, uint64(e.policy.MaxAttempts-1)),
		ctx,
	))
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return fmt.Errorf("%w: %s aborted after %d attempt(s): %w", ErrTimeout, name, attempts, err)
	}
	if e.policy.IsRetryable(err) {
		slog.Error("[Retry] All attempts exhausted",
			"operation", name,
			"attempts", attempts,
			"error", err,
		)
		return fmt.Errorf("%w: %s failed after %d attempt(s): %w", ErrRetriesExhausted, name, attempts, err)
	}
	return err
}
