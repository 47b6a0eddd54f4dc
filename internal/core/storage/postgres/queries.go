package postgres

const (
	querySaveReview = `
		INSERT INTO reviews (id, item_id, author_id, score, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	queryUpdateReview = `
		UPDATE reviews
		SET score = $1, comment = $2, updated_at = $3
		WHERE item_id = $4 AND id = $5
	`

	queryDeleteReview = `
		DELETE FROM reviews
		WHERE item_id = $1 AND id = $2
	`

	queryGetReview = `
		SELECT id, item_id, author_id, score, comment, created_at, updated_at
		FROM reviews
		WHERE item_id = $1 AND id = $2
	`

	queryListReviews = `
		SELECT id, item_id, author_id, score, comment, created_at, updated_at
		FROM reviews
		WHERE item_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	// The authoritative totals read. COALESCE keeps the zero-review case a
	// plain (0, 0) row instead of a NULL sum.
	queryCountAndSum = `
		SELECT COUNT(*), COALESCE(SUM(score), 0)
		FROM reviews
		WHERE item_id = $1
	`

	queryGetAggregate = `
		SELECT item_id, sample_count, average_score, version, updated_at
		FROM item_aggregates
		WHERE item_id = $1
	`

	// First write for an item: succeeds only if no row exists yet.
	queryInsertAggregate = `
		INSERT INTO item_aggregates (item_id, sample_count, average_score, version, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (item_id) DO NOTHING
	`

	// Subsequent writes: the optimistic version check. Zero rows affected
	// means another writer got there first.
	queryUpdateAggregate = `
		UPDATE item_aggregates
		SET sample_count = $1, average_score = $2, version = $3, updated_at = $4
		WHERE item_id = $5 AND version = $6
	`
)
