// Package word implements the corpus store for dictionary entries using
// PostgreSQL. It owns the words table: lookups by id and by raw headword,
// planned searches (see package search), autocomplete, corpus statistics,
// admin writes and the batched bulk import.
//
// Every method resolves its Querier from the context, so calls made inside
// postgres.TxManager.RunInTx join the surrounding transaction.
package word

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/internal/search"
)

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// entryColumns is the canonical column list read by scanEntry.
var entryColumns = []string{
	"id", "word", "word_normalized", "search_keywords", "meaning", "etymology_type",
	"cross_reference", "full_entry_text", "occurrence_number", "is_corrected",
	"corrected_at", "corrected_by", "created_at", "updated_at",
}

const entryColumnsSQL = `id, word, word_normalized, search_keywords, meaning, etymology_type,
       cross_reference, full_entry_text, occurrence_number, is_corrected,
       corrected_at, corrected_by, created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT ` + entryColumnsSQL + ` FROM words WHERE id = $1`

// First occurrence wins when a headword has homographs.
const getFirstByWordSQL = `
SELECT id, word, meaning
FROM words
WHERE word = $1
ORDER BY occurrence_number, id
LIMIT 1`

const listOccurrencesSQL = `
SELECT id, word, meaning, etymology_type, occurrence_number
FROM words
WHERE word = $1 AND id <> $2
ORDER BY occurrence_number, id`

const autocompleteSQL = `
SELECT word
FROM (
    SELECT DISTINCT word FROM words WHERE word_normalized LIKE $1
) w
ORDER BY word
LIMIT $2`

const randomSQL = `SELECT ` + entryColumnsSQL + ` FROM words ORDER BY random() LIMIT 1`

const listEtymologiesSQL = `
SELECT DISTINCT etymology_type
FROM words
WHERE etymology_type IS NOT NULL AND etymology_type <> ''
ORDER BY etymology_type`

const statisticsSQL = `
SELECT unique_words, total_entries, etymology_types, repeated_words, total_variants
FROM word_statistics`

const etymologyDistributionSQL = `
SELECT COALESCE(etymology_type, ''), COUNT(*) AS count
FROM words
GROUP BY etymology_type
ORDER BY count DESC, 1`

const mostRepeatedSQL = `
SELECT word, MAX(occurrence_number) AS max_occurrence
FROM words
GROUP BY word
HAVING MAX(occurrence_number) > 1
ORDER BY max_occurrence DESC, word
LIMIT $1`

// MostRepeatedLimit caps the most-repeated list in Statistics.
const MostRepeatedLimit = 10

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "word", id)
	}
	return &e, nil
}

// GetFirstByWord resolves a cross-reference: the lowest occurrence of the
// entry whose raw headword equals word.
// Returns domain.ErrNotFound if no entry carries that headword.
func (r *Repo) GetFirstByWord(ctx context.Context, word string) (*domain.EntrySummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.EntrySummary
	if err := q.QueryRow(ctx, getFirstByWordSQL, word).Scan(&s.ID, &s.Word, &s.Meaning); err != nil {
		return nil, postgres.MapError(err, "word by headword", 0)
	}
	return &s, nil
}

// ListOccurrences returns the other entries sharing the raw headword word,
// excluding excludeID, ordered by occurrence number.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListOccurrences(ctx context.Context, word string, excludeID int64) ([]domain.Occurrence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listOccurrencesSQL, word, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list occurrences: %w", err)
	}

	occurrences, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Occurrence, error) {
		var o domain.Occurrence
		err := row.Scan(&o.ID, &o.Word, &o.Meaning, &o.EtymologyType, &o.OccurrenceNumber)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("list occurrences: %w", err)
	}
	if occurrences == nil {
		occurrences = []domain.Occurrence{}
	}
	return occurrences, nil
}

// Search runs a planned query and returns one page of entries plus the
// total number of matching rows. Both statements go out in one batch.
func (r *Repo) Search(ctx context.Context, plan search.Query) ([]domain.Entry, int, error) {
	pageSQL, pageArgs, err := plan.Select(entryColumns...).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search query: %w", err)
	}
	countSQL, countArgs, err := plan.Count().ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	batch := &pgx.Batch{}
	batch.Queue(countSQL, countArgs...)
	batch.Queue(pageSQL, pageArgs...)

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	var total int
	if err := results.QueryRow().Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	rows, err := results.Query()
	if err != nil {
		return nil, 0, fmt.Errorf("search words: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0, plan.Limit)
	for rows.Next() {
		var (
			e         domain.Entry
			relevance float64
		)
		dest := entryDest(&e)
		if plan.Ranked() {
			dest = append(dest, &relevance)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("scan search row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search words: %w", err)
	}

	return entries, total, nil
}

// Autocomplete returns up to limit distinct headwords whose normalized form
// starts with the already-normalized prefix, alphabetically.
func (r *Repo) Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, autocompleteSQL, domain.EscapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	words, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

// Random returns one uniformly chosen entry.
// Returns domain.ErrNotFound when the corpus is empty.
func (r *Repo) Random(ctx context.Context) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(q.QueryRow(ctx, randomSQL))
	if err != nil {
		return nil, postgres.MapError(err, "random word", 0)
	}
	return &e, nil
}

// ListEtymologies returns the distinct non-empty etymology types in use.
func (r *Repo) ListEtymologies(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listEtymologiesSQL)
	if err != nil {
		return nil, fmt.Errorf("list etymologies: %w", err)
	}

	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list etymologies: %w", err)
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// Statistics gathers corpus counts, the etymology distribution and the
// most repeated headwords in one round trip.
func (r *Repo) Statistics(ctx context.Context) (*domain.Statistics, error) {
	batch := &pgx.Batch{}
	batch.Queue(statisticsSQL)
	batch.Queue(etymologyDistributionSQL)
	batch.Queue(mostRepeatedSQL, MostRepeatedLimit)

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	var s domain.Statistics
	if err := results.QueryRow().Scan(
		&s.UniqueWords, &s.TotalEntries, &s.EtymologyTypes, &s.RepeatedWords, &s.TotalVariants,
	); err != nil {
		return nil, fmt.Errorf("statistics: totals: %w", err)
	}

	rows, err := results.Query()
	if err != nil {
		return nil, fmt.Errorf("statistics: distribution: %w", err)
	}
	s.EtymologyDistribution, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EtymologyCount, error) {
		var c domain.EtymologyCount
		err := row.Scan(&c.EtymologyType, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("statistics: distribution: %w", err)
	}

	rows, err = results.Query()
	if err != nil {
		return nil, fmt.Errorf("statistics: most repeated: %w", err)
	}
	s.MostRepeated, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RepeatedWord, error) {
		var w domain.RepeatedWord
		err := row.Scan(&w.Word, &w.Occurrences)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("statistics: most repeated: %w", err)
	}

	if s.EtymologyDistribution == nil {
		s.EtymologyDistribution = []domain.EtymologyCount{}
	}
	if s.MostRepeated == nil {
		s.MostRepeated = []domain.RepeatedWord{}
	}
	return &s, nil
}

// Count returns the number of entries in the corpus.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func entryDest(e *domain.Entry) []any {
	return []any{
		&e.ID, &e.Word, &e.WordNormalized, &e.SearchKeywords, &e.Meaning, &e.EtymologyType,
		&e.CrossReference, &e.FullEntryText, &e.OccurrenceNumber, &e.IsCorrected,
		&e.CorrectedAt, &e.CorrectedBy, &e.CreatedAt, &e.UpdatedAt,
	}
}

func scanEntry(row pgx.Row) (domain.Entry, error) {
	var e domain.Entry
	if err := row.Scan(entryDest(&e)...); err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}
