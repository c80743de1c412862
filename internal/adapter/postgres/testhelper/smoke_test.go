package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	entry := SeedEntry(t, pool, "2 Öt/üt-"+UniqueSuffix(), EntryOpts{
		EtymologyType: "smoke",
		Variants:      []string{"ötü"},
	})

	var normalized string
	var variants int
	err := pool.QueryRow(context.Background(),
		`SELECT w.word_normalized, (SELECT count(*) FROM variants v WHERE v.word_id = w.id)
		 FROM words w WHERE w.id = $1`,
		entry.ID,
	).Scan(&normalized, &variants)
	if err != nil {
		t.Fatalf("expected entry in DB, got error: %v", err)
	}

	if normalized != entry.WordNormalized {
		t.Fatalf("expected word_normalized %q, got %q", entry.WordNormalized, normalized)
	}
	if variants != 1 {
		t.Fatalf("expected 1 variant, got %d", variants)
	}
}
