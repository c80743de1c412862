package lookup

import (
	"context"
	"fmt"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// Statistics returns corpus-wide counts.
func (s *Service) Statistics(ctx context.Context) (*domain.Statistics, error) {
	stats, err := s.words.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	return stats, nil
}

// Etymologies returns the distinct etymology types used by the corpus.
func (s *Service) Etymologies(ctx context.Context) ([]string, error) {
	types, err := s.words.ListEtymologies(ctx)
	if err != nil {
		return nil, fmt.Errorf("etymologies: %w", err)
	}
	return types, nil
}

// Random returns one entry with its variants attached.
// Returns domain.ErrNotFound when the corpus is empty.
func (s *Service) Random(ctx context.Context) (*domain.Entry, error) {
	e, err := s.words.Random(ctx)
	if err != nil {
		return nil, err
	}

	entries := []domain.Entry{*e}
	if err := s.attachVariants(ctx, entries); err != nil {
		return nil, fmt.Errorf("random: %w", err)
	}
	return &entries[0], nil
}
