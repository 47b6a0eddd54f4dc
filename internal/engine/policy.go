package engine

import (
	"errors"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
)

// IsRetryableStoreError is the retry predicate for store calls: only
// transient failures earn another attempt. Version conflicts restart the
// outer recompute instead of the inner call, and invalid aggregate state
// is a bug, not a store hiccup.
func IsRetryableStoreError(err error) bool {
	return storage.IsTransient(err)
}

// IsStoreFailure is the circuit-breaker failure predicate. Domain outcomes
// carried as errors say nothing about store health and must not trip (or
// probe-close) the circuit.
func IsStoreFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, storage.ErrVersionConflict) ||
		errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, rating.ErrInvalidAggregateState) {
		return false
	}
	return true
}
