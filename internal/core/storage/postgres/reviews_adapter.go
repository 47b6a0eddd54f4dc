package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/lib/pq"
)

// SaveReview inserts a new review row.
// Returns storage.ErrDuplicate if the id already exists.
func (a *Adapter) SaveReview(ctx context.Context, review *rating.Review) error {
	_, err := a.db.ExecContext(ctx, querySaveReview,
		review.ID,
		review.ItemID,
		review.AuthorID,
		review.Score,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return storage.ErrDuplicate
		}
		return classify(fmt.Errorf("save review %s: %w", review.ID, err))
	}
	return nil
}

// UpdateReview overwrites the score and comment of an existing review.
// Returns storage.ErrNotFound if the review does not exist.
func (a *Adapter) UpdateReview(ctx context.Context, review *rating.Review) error {
	result, err := a.db.ExecContext(ctx, queryUpdateReview,
		review.Score,
		review.Comment,
		review.UpdatedAt,
		review.ItemID,
		review.ID,
	)
	if err != nil {
		return classify(fmt.Errorf("update review %s: %w", review.ID, err))
	}
	return requireRowAffected(result, "update review")
}

// DeleteReview removes a review row.
// Returns storage.ErrNotFound if the review does not exist.
func (a *Adapter) DeleteReview(ctx context.Context, itemID, reviewID string) error {
	result, err := a.db.ExecContext(ctx, queryDeleteReview, itemID, reviewID)
	if err != nil {
		return classify(fmt.Errorf("delete review %s: %w", reviewID, err))
	}
	return requireRowAffected(result, "delete review")
}

// GetReview fetches a single review.
func (a *Adapter) GetReview(ctx context.Context, itemID, reviewID string) (*rating.Review, error) {
	row := a.db.QueryRowContext(ctx, queryGetReview, itemID, reviewID)
	review, err := scanReviewRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, classify(fmt.Errorf("get review %s: %w", reviewID, err))
	}
	return review, nil
}

// ListReviews fetches the most recent reviews for an item.
func (a *Adapter) ListReviews(ctx context.Context, itemID string, limit int) ([]*rating.Review, error) {
	rows, err := a.db.QueryContext(ctx, queryListReviews, itemID, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("list reviews for %s: %w", itemID, err))
	}
	defer rows.Close()

	var reviews []*rating.Review
	for rows.Next() {
		review, err := scanReviewRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list reviews for %s: %w", itemID, err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("list reviews for %s: iterate rows: %w", itemID, err))
	}
	return reviews, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanReviewRow scans a database row into a Review.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanReviewRow(row scanner) (*rating.Review, error) {
	var review rating.Review
	err := row.Scan(
		&review.ID,
		&review.ItemID,
		&review.AuthorID,
		&review.Score,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func requireRowAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return classify(fmt.Errorf("%s: rows affected: %w", op, err))
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
