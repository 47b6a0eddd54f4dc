package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/shopspring/decimal"
)

// ComputeCountAndSum returns the authoritative review count and score sum
// for one item. This is a full recount, never a delta, so replaying it
// during retries is harmless.
func (a *Adapter) ComputeCountAndSum(ctx context.Context, itemID string) (int64, decimal.Decimal, error) {
	var (
		count  int64
		sumStr string
	)

	row := a.queryRowContext(ctx, a.stmtCountAndSum, queryCountAndSum, itemID)
	if err := row.Scan(&count, &sumStr); err != nil {
		return 0, decimal.Zero, classify(fmt.Errorf("count and sum for %s: %w", itemID, err))
	}

	sum, err := decimal.NewFromString(sumStr)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("count and sum for %s: parse sum %q: %w", itemID, sumStr, err)
	}
	return count, sum, nil
}

// GetAggregate fetches the persisted aggregate row for an item.
// Returns storage.ErrNotFound when no row exists yet.
func (a *Adapter) GetAggregate(ctx context.Context, itemID string) (*rating.Aggregate, error) {
	var (
		agg    rating.Aggregate
		avgStr string
	)

	row := a.queryRowContext(ctx, a.stmtGetAggregate, queryGetAggregate, itemID)
	err := row.Scan(&agg.ItemID, &agg.SampleCount, &avgStr, &agg.Version, &agg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, classify(fmt.Errorf("get aggregate for %s: %w", itemID, err))
	}

	avg, err := decimal.NewFromString(avgStr)
	if err != nil {
		return nil, fmt.Errorf("get aggregate for %s: parse average %q: %w", itemID, avgStr, err)
	}
	agg.AverageScore = avg
	return &agg, nil
}

// WriteAggregate persists agg with an optimistic version check.
//
// expectedVersion == 0 means "no row exists yet": an insert that yields to
// any concurrent creator. Otherwise a conditional update that only lands if
// the stored version is still expectedVersion. Zero rows affected either
// way is storage.ErrVersionConflict — the caller re-reads and recomputes.
func (a *Adapter) WriteAggregate(ctx context.Context, agg *rating.Aggregate, expectedVersion int64) error {
	var (
		result sql.Result
		err    error
	)

	if expectedVersion == 0 {
		result, err = a.db.ExecContext(ctx, queryInsertAggregate,
			agg.ItemID,
			agg.SampleCount,
			agg.AverageScore,
			agg.Version,
			agg.UpdatedAt,
		)
	} else {
		result, err = a.db.ExecContext(ctx, queryUpdateAggregate,
			agg.SampleCount,
			agg.AverageScore,
			agg.Version,
			agg.UpdatedAt,
			agg.ItemID,
			expectedVersion,
		)
	}
	if err != nil {
		return classify(fmt.Errorf("write aggregate for %s: %w", agg.ItemID, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return classify(fmt.Errorf("write aggregate for %s: rows affected: %w", agg.ItemID, err))
	}
	if affected == 0 {
		slog.Debug("[Postgres] Aggregate write lost optimistic check",
			"item_id", agg.ItemID,
			"expected_version", expectedVersion,
		)
		return storage.ErrVersionConflict
	}
	return nil
}

// queryRowContext prefers the prepared statement when the adapter was built
// with NewAdapter; the sqlmock-backed test constructor has no statements.
func (a *Adapter) queryRowContext(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) *sql.Row {
	if stmt != nil {
		return stmt.QueryRowContext(ctx, args...)
	}
	return a.db.QueryRowContext(ctx, query, args...)
}
