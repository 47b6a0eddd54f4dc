package resilience

import "errors"

var (
	// ErrRetriesExhausted wraps the last error after all retry attempts
	// failed with retryable errors.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrCircuitOpen is returned when the breaker rejects a call without
	// contacting the dependency.
	ErrCircuitOpen = errors.New("circuit open")

	// ErrTimeout is returned when the caller-supplied deadline elapsed
	// before the retry loop could finish.
	ErrTimeout = errors.New("timeout exceeded")
)
