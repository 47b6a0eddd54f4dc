package storage

import (
	"context"
	"errors"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a review with the same id already exists.
	ErrDuplicate = errors.New("review already exists")

	// ErrVersionConflict is returned by WriteAggregate when the optimistic
	// version check fails: another writer persisted a newer aggregate since
	// this writer read it. The caller must re-read and recompute, not just
	// retry the write.
	ErrVersionConflict = errors.New("aggregate version conflict")

	// ErrTransient marks store failures expected to resolve on retry
	// (connection reset, timeout, pool exhaustion). Adapters wrap the
	// underlying error with this sentinel so callers can classify via
	// errors.Is without knowing driver error codes.
	ErrTransient = errors.New("transient store error")
)

// IsTransient reports whether err is a retryable store failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// ReviewStore persists review rows. Owned by the reviews collaborator;
// the engine never writes through this interface.
type ReviewStore interface {
	SaveReview(ctx context.Context, review *rating.Review) error
	UpdateReview(ctx context.Context, review *rating.Review) error
	DeleteReview(ctx context.Context, itemID, reviewID string) error
	GetReview(ctx context.Context, itemID, reviewID string) (*rating.Review, error)
	ListReviews(ctx context.Context, itemID string, limit int) ([]*rating.Review, error)
}

// AggregateStore is the engine's narrow view of the persistent store.
// All three calls are idempotent given the same inputs, which is what makes
// the retry loop around them safe.
type AggregateStore interface {
	// ComputeCountAndSum returns the authoritative review count and score
	// sum for one item — never an incremental delta.
	ComputeCountAndSum(ctx context.Context, itemID string) (count int64, sum decimal.Decimal, err error)

	// GetAggregate returns the persisted aggregate for an item.
	// Returns ErrNotFound when no aggregate row exists yet.
	GetAggregate(ctx context.Context, itemID string) (*rating.Aggregate, error)

	// WriteAggregate persists agg only if the stored version still equals
	// expectedVersion (0 meaning "no row exists yet"). Returns
	// ErrVersionConflict when the check fails.
	WriteAggregate(ctx context.Context, agg *rating.Aggregate, expectedVersion int64) error
}
