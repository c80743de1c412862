package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// EntryOpts customises SeedEntry. Zero values get sensible defaults.
type EntryOpts struct {
	Meaning          string
	EtymologyType    string
	CrossReference   string
	FullEntryText    string
	OccurrenceNumber int
	Variants         []string
}

// SeedEntry inserts a words row for word with its normalized columns
// computed, plus any variants. Returns the populated domain.Entry.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, word string, opts EntryOpts) domain.Entry {
	t.Helper()
	ctx := context.Background()

	var e domain.Entry
	e.ApplyWord(word)
	e.OccurrenceNumber = opts.OccurrenceNumber
	if e.OccurrenceNumber == 0 {
		e.OccurrenceNumber = 1
	}
	e.Meaning = optional(opts.Meaning)
	e.EtymologyType = optional(opts.EtymologyType)
	e.CrossReference = optional(opts.CrossReference)
	e.FullEntryText = optional(opts.FullEntryText)

	err := pool.QueryRow(ctx,
		`INSERT INTO words (word, word_normalized, search_keywords, meaning, etymology_type,
		                    cross_reference, full_entry_text, occurrence_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		e.Word, e.WordNormalized, e.SearchKeywords, e.Meaning, e.EtymologyType,
		e.CrossReference, e.FullEntryText, e.OccurrenceNumber,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert %q: %v", word, err)
	}

	for _, v := range opts.Variants {
		nv := domain.NewVariant(e.ID, v)
		if _, err := pool.Exec(ctx,
			`INSERT INTO variants (word_id, variant, variant_normalized) VALUES ($1, $2, $3)`,
			nv.EntryID, nv.Variant, nv.VariantNormalized,
		); err != nil {
			t.Fatalf("testhelper: SeedEntry insert variant %q: %v", v, err)
		}
		e.Variants = append(e.Variants, v)
	}

	return e
}

// SeedReport inserts a pending report against entry.
func SeedReport(t *testing.T, pool *pgxpool.Pool, entry domain.Entry, errorTypes ...string) domain.Report {
	t.Helper()
	if len(errorTypes) == 0 {
		errorTypes = []string{"meaning"}
	}

	r := domain.Report{
		WordID:     entry.ID,
		WordText:   entry.Word,
		ErrorTypes: errorTypes,
		Status:     domain.ReportStatusPending,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO reports (word_id, word_text, error_types) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		r.WordID, r.WordText, r.ErrorTypes,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedReport: %v", err)
	}
	return r
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
