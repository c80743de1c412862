package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/internal/search"
)

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

// Search plans req, runs it and returns the assembled page. Out-of-range
// paging and unknown modes are clamped, never rejected.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	if req.PageSize <= 0 {
		req.PageSize = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && req.PageSize > s.cfg.MaxPageSize {
		req.PageSize = s.cfg.MaxPageSize
	}

	plan := search.Plan(req)

	entries, total, err := s.words.Search(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if err := s.attachVariants(ctx, entries); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	s.log.DebugContext(ctx, "search",
		"term", plan.Request.Term,
		"field", plan.Request.Field.String(),
		"mode", plan.Request.Mode.String(),
		"total", total,
	)

	return &domain.SearchResult{
		Items:      entries,
		Page:       plan.Request.Page,
		PageSize:   plan.Request.PageSize,
		Total:      total,
		TotalPages: domain.TotalPages(total, plan.Request.PageSize),
	}, nil
}

// ---------------------------------------------------------------------------
// Detail
// ---------------------------------------------------------------------------

// GetEntry returns an entry with its variants, resolved cross-reference and
// sibling occurrences.
func (s *Service) GetEntry(ctx context.Context, id int64) (*domain.EntryDetail, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}

	e, err := s.words.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleDetail(ctx, *e)
}

// ---------------------------------------------------------------------------
// Autocomplete
// ---------------------------------------------------------------------------

// Autocomplete suggests headwords whose normalized form starts with the
// normalized term. Terms shorter than the configured minimum (counted in
// runes) or folding to nothing yield an empty list.
func (s *Service) Autocomplete(ctx context.Context, term string, limit int) ([]string, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < s.cfg.AutocompleteMinLen {
		return []string{}, nil
	}

	prefix := domain.Normalize(term)
	if prefix == "" {
		return []string{}, nil
	}

	limit = clampLimit(limit, 1, s.cfg.AutocompleteMaxSize, s.cfg.AutocompleteLimit)

	suggestions, err := s.words.Autocomplete(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return suggestions, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
