package rating

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// averagePlaces is the scale the average is rounded to before persisting.
// Matches the NUMERIC(4,2) column domain.
const averagePlaces = 2

// ErrInvalidAggregateState marks an aggregate that violates its own
// invariants (negative count, average outside the score domain). This is a
// bug indicator, never retried.
var ErrInvalidAggregateState = errors.New("invalid aggregate state")

// Aggregate is the denormalized rating statistic cached on an item.
//
// Invariant: SampleCount and AverageScore always describe the same set of
// reviews — the set that existed in the store when Version was written.
// They are only ever persisted together.
type Aggregate struct {
	// ItemID is the parent key. One aggregate row per item.
	ItemID string `json:"item_id"`

	// SampleCount is the number of reviews contributing to the average.
	SampleCount int64 `json:"sample_count"`

	// AverageScore is the arithmetic mean of all review scores.
	// Zero when SampleCount is zero.
	AverageScore decimal.Decimal `json:"average_score"`

	// Version increments on every persisted update. Used for the
	// optimistic write check; a stale writer loses.
	Version int64 `json:"version"`

	UpdatedAt time.Time `json:"updated_at"`
}

// AggregateFromTotals builds the next aggregate from authoritative store
// totals. version is the version the new aggregate will be written as
// (previous version + 1).
//
// count == 0 yields a zero average — never a division by zero, never a
// stale nonzero average surviving the last delete.
func AggregateFromTotals(itemID string, count int64, sum decimal.Decimal, version int64, now time.Time) (*Aggregate, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d for item %s", ErrInvalidAggregateState, count, itemID)
	}
	if version < 1 {
		return nil, fmt.Errorf("%w: non-positive version %d for item %s", ErrInvalidAggregateState, version, itemID)
	}

	avg := decimal.Zero
	if count > 0 {
		avg = sum.Div(decimal.NewFromInt(count)).Round(averagePlaces)
		if avg.LessThan(MinScore) || avg.GreaterThan(MaxScore) {
			return nil, fmt.Errorf("%w: average %s out of range for item %s (count=%d sum=%s)",
				ErrInvalidAggregateState, avg, itemID, count, sum)
		}
	}

	return &Aggregate{
		ItemID:       itemID,
		SampleCount:  count,
		AverageScore: avg,
		Version:      version,
		UpdatedAt:    now.UTC(),
	}, nil
}
