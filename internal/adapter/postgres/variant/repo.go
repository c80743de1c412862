// Package variant implements the variants half of the corpus store: the
// alternate attested spellings each entry owns.
package variant

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// Repo provides variant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new variant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByEntryIDsSQL = `
SELECT id, word_id, variant, variant_normalized, created_at
FROM variants
WHERE word_id = ANY($1::bigint[])
ORDER BY word_id, id`

const insertSQL = `
INSERT INTO variants (word_id, variant, variant_normalized)
VALUES ($1, $2, $3)
RETURNING id, created_at`

// GetByEntryIDs returns the variants of all given entries in one query,
// ordered by entry id then insertion order.
func (r *Repo) GetByEntryIDs(ctx context.Context, entryIDs []int64) ([]domain.Variant, error) {
	if len(entryIDs) == 0 {
		return []domain.Variant{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, getByEntryIDsSQL, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("get variants by entry ids: %w", err)
	}

	variants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Variant, error) {
		var v domain.Variant
		err := row.Scan(&v.ID, &v.EntryID, &v.Variant, &v.VariantNormalized, &v.CreatedAt)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("get variants by entry ids: %w", err)
	}
	if variants == nil {
		variants = []domain.Variant{}
	}
	return variants, nil
}

// DeleteByEntryID removes every variant of an entry and returns how many
// rows were deleted. Zero is not an error.
func (r *Repo) DeleteByEntryID(ctx context.Context, entryID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM variants WHERE word_id = $1`, entryID)
	if err != nil {
		return 0, postgres.MapError(err, "variants of word", entryID)
	}
	return tag.RowsAffected(), nil
}

// InsertMany inserts variants one statement at a time so that the first
// failing row aborts the surrounding transaction with a mapped error.
// IDs and timestamps are written back into variants.
func (r *Repo) InsertMany(ctx context.Context, variants []domain.Variant) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	for i := range variants {
		v := &variants[i]
		if err := q.QueryRow(ctx, insertSQL, v.EntryID, v.Variant, v.VariantNormalized).
			Scan(&v.ID, &v.CreatedAt); err != nil {
			return postgres.MapError(err, "variant of word", v.EntryID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Batch insert methods (pgx.Batch API)
// ---------------------------------------------------------------------------

// BulkInsert inserts imported variants using pgx.Batch.
// Returns the number of inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, variants []domain.Variant) (int, error) {
	if len(variants) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, v := range variants {
		batch.Queue(
			`INSERT INTO variants (word_id, variant, variant_normalized) VALUES ($1, $2, $3)`,
			v.EntryID, v.Variant, v.VariantNormalized,
		)
	}

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range variants {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("bulk insert variants: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
