package word

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Homographs share an advisory lock keyed by their base word so concurrent
// creations cannot hand out the same occurrence number.
const lockBaseWordSQL = `SELECT pg_advisory_xact_lock(hashtext($1))`

const nextOccurrenceSQL = `
SELECT COALESCE(MAX(occurrence_number), 0) + 1
FROM words
WHERE btrim(regexp_replace(word, '^[0-9]+\s*', '')) = $1`

const insertSQL = `
INSERT INTO words (word, word_normalized, search_keywords, meaning, etymology_type,
                   cross_reference, full_entry_text, occurrence_number,
                   is_corrected, corrected_at, corrected_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + entryColumnsSQL

const updateCorrectedSQL = `
UPDATE words
SET word            = $2,
    word_normalized = $3,
    search_keywords = $4,
    meaning         = $5,
    etymology_type  = $6,
    cross_reference = $7,
    full_entry_text = $8,
    is_corrected    = TRUE,
    corrected_at    = now(),
    corrected_by    = $9
WHERE id = $1
RETURNING ` + entryColumnsSQL

// Create inserts an admin-authored entry. The occurrence number is the next
// free one for the entry's base word. Create must run inside
// TxManager.RunInTx; the advisory lock is released at commit.
func (r *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if !postgres.InTx(ctx) {
		return fmt.Errorf("create word: must run inside a transaction")
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e.ApplyWord(e.Word)
	base := domain.BaseWord(e.Word)

	if _, err := q.Exec(ctx, lockBaseWordSQL, base); err != nil {
		return fmt.Errorf("create word: lock base word: %w", err)
	}
	if err := q.QueryRow(ctx, nextOccurrenceSQL, base).Scan(&e.OccurrenceNumber); err != nil {
		return fmt.Errorf("create word: next occurrence: %w", err)
	}

	created, err := scanEntry(q.QueryRow(ctx, insertSQL,
		e.Word, e.WordNormalized, e.SearchKeywords, e.Meaning, e.EtymologyType,
		e.CrossReference, e.FullEntryText, e.OccurrenceNumber,
		e.IsCorrected, e.CorrectedAt, e.CorrectedBy,
	))
	if err != nil {
		return postgres.MapError(err, "word", 0)
	}

	created.Variants = e.Variants
	*e = created
	return nil
}

// UpdateCorrected replaces every mutable field of the entry with id e.ID and
// stamps correction provenance. The normalized columns are recomputed from
// e.Word. On success e is refreshed from the stored row.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) UpdateCorrected(ctx context.Context, e *domain.Entry, correctedBy string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e.ApplyWord(e.Word)

	updated, err := scanEntry(q.QueryRow(ctx, updateCorrectedSQL,
		e.ID, e.Word, e.WordNormalized, e.SearchKeywords, e.Meaning, e.EtymologyType,
		e.CrossReference, e.FullEntryText, correctedBy,
	))
	if err != nil {
		return postgres.MapError(err, "word", e.ID)
	}

	updated.Variants = e.Variants
	*e = updated
	return nil
}

// ---------------------------------------------------------------------------
// Batch insert methods (pgx.Batch API)
// ---------------------------------------------------------------------------

const bulkInsertSQL = `
INSERT INTO words (word, word_normalized, search_keywords, meaning, etymology_type,
                   cross_reference, full_entry_text, occurrence_number)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

// BulkInsert writes imported entries as they are, occurrence numbers
// included, and returns the generated ids in input order.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.Entry) ([]int64, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(bulkInsertSQL,
			e.Word, e.WordNormalized, e.SearchKeywords, e.Meaning, e.EtymologyType,
			e.CrossReference, e.FullEntryText, e.OccurrenceNumber,
		)
	}

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	ids := make([]int64, len(entries))
	for i := range entries {
		if err := results.QueryRow().Scan(&ids[i]); err != nil {
			return nil, fmt.Errorf("bulk insert word %q: %w", entries[i].Word, postgres.MapError(err, "word", 0))
		}
	}
	return ids, nil
}

// Truncate removes every entry together with its variants and reports and
// resets the identity sequences.
func (r *Repo) Truncate(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, `TRUNCATE words, variants, reports RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate words: %w", err)
	}
	return nil
}
