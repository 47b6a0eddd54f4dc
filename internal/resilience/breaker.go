package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// CircuitPolicy configures the breaker for one logical operation class.
type CircuitPolicy struct {
	// FailureThreshold is the number of consecutive dependency failures
	// that trips the circuit from closed to open.
	FailureThreshold uint32

	// CooldownPeriod is how long the circuit stays open before allowing
	// a single half-open probe.
	CooldownPeriod time.Duration

	// IsFailure decides whether an error counts against the dependency's
	// health. Domain outcomes carried as errors (version conflicts, not
	// found) should return false so they neither trip nor reset the
	// breaker incorrectly. Nil means every error counts.
	IsFailure func(error) bool
}

func (p CircuitPolicy) normalized() CircuitPolicy {
	n := p
	if n.FailureThreshold == 0 {
		n.FailureThreshold = 5
	}
	if n.CooldownPeriod <= 0 {
		n.CooldownPeriod = 30 * time.Second
	}
	if n.IsFailure == nil {
		n.IsFailure = func(err error) bool { return err != nil }
	}
	return n
}

// CircuitBreaker guards one operation class against a persistently failing
// store, failing fast while open instead of piling on. State transitions
// are synchronized inside gobreaker; concurrent callers always observe a
// consistent state.
type CircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker[struct{}]
	name string
}

// NewCircuitBreaker creates a breaker. MaxRequests of 1 allows exactly one
// probe call while half-open; its outcome decides open-vs-closed.
func NewCircuitBreaker(name string, policy CircuitPolicy) *CircuitBreaker {
	policy = policy.normalized()

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     policy.CooldownPeriod,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= policy.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !policy.IsFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("[CircuitBreaker] State transition",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &CircuitBreaker{cb: cb, name: name}
}

// Execute runs op through the breaker. While open it returns ErrCircuitOpen
// immediately without invoking op.
func (b *CircuitBreaker) Execute(op func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, op()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: %w", ErrCircuitOpen, b.name, err)
	}
	return err
}

// State reports the current breaker state (closed, half-open, open).
func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}
