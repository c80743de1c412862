// Package lookup implements the read side of the dictionary: search,
// entry detail, autocomplete, statistics and random entries. Results are
// assembled with their variants, cross-references and sibling occurrences.
package lookup

import (
	"context"
	"log/slog"

	"github.com/etimoloji/clauson-dictionary/internal/config"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/internal/search"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	GetFirstByWord(ctx context.Context, word string) (*domain.EntrySummary, error)
	ListOccurrences(ctx context.Context, word string, excludeID int64) ([]domain.Occurrence, error)
	Search(ctx context.Context, plan search.Query) ([]domain.Entry, int, error)
	Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error)
	Random(ctx context.Context) (*domain.Entry, error)
	ListEtymologies(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

type variantRepo interface {
	GetByEntryIDs(ctx context.Context, entryIDs []int64) ([]domain.Variant, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements dictionary lookups.
type Service struct {
	log      *slog.Logger
	words    wordRepo
	variants variantRepo
	cfg      config.SearchConfig
}

// NewService creates a new lookup service.
func NewService(logger *slog.Logger, words wordRepo, variants variantRepo, cfg config.SearchConfig) *Service {
	return &Service{
		log:      logger.With("service", "lookup"),
		words:    words,
		variants: variants,
		cfg:      cfg,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// clampLimit ensures a limit is within [min, max], defaulting from 0 to defaultVal.
func clampLimit(limit, min, max, defaultVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
