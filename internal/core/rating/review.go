package rating

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Score bounds for a single review. The stored average always falls inside
// the same domain when at least one review exists.
var (
	MinScore = decimal.NewFromInt(1)
	MaxScore = decimal.NewFromInt(5)
)

// Review is a single scored review of an item. Reviews are owned by the
// reviews collaborator; the engine only ever reads aggregated projections
// (count, sum) of them.
type Review struct {
	// ID is the unique review identifier (UUID), assigned on creation.
	ID string `json:"id"`

	// ItemID identifies the reviewed item. Opaque to the engine.
	ItemID string `json:"item_id"`

	// AuthorID identifies who wrote the review.
	AuthorID string `json:"author_id"`

	// Score is the numeric rating in [MinScore, MaxScore].
	Score decimal.Decimal `json:"score"`

	// Comment is optional free text.
	Comment string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate ensures the review carries all required fields and a score
// within bounds.
func (r *Review) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("item_id is required")
	}
	if r.AuthorID == "" {
		return fmt.Errorf("author_id is required")
	}
	return ValidateScore(r.Score)
}

// ValidateScore checks a score against the allowed rating domain.
func ValidateScore(score decimal.Decimal) error {
	if score.LessThan(MinScore) || score.GreaterThan(MaxScore) {
		return fmt.Errorf("score %s out of range [%s, %s]", score, MinScore, MaxScore)
	}
	return nil
}

// MutationOp names the kind of review mutation that triggered an aggregate
// maintenance pass. The maintainer recomputes from authoritative totals
// either way; the op is carried for logging and metrics only.
type MutationOp string

const (
	OpInsert MutationOp = "insert"
	OpUpdate MutationOp = "update"
	OpDelete MutationOp = "delete"
)
