package admin

import (
	"context"
	"fmt"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// UpdateEntry replaces every mutable field of entry id and its variant list
// in one transaction. Nothing is written unless the whole edit succeeds.
func (s *Service) UpdateEntry(ctx context.Context, passcode string, id int64, input EntryInput) (*domain.Entry, error) {
	if err := s.Authorize(passcode); err != nil {
		s.log.WarnContext(ctx, "admin update rejected", "word_id", id, "reason", err.Error())
		return nil, err
	}
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e := input.entry(id)
	variants := input.variants(id)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.words.UpdateCorrected(ctx, e, CorrectedBy); err != nil {
			return err
		}
		if _, err := s.variants.DeleteByEntryID(ctx, id); err != nil {
			return fmt.Errorf("delete variants: %w", err)
		}
		if err := s.variants.InsertMany(ctx, variants); err != nil {
			return fmt.Errorf("insert variants: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update word %d: %w", id, err)
	}

	e.Variants = variantNames(variants)
	s.log.InfoContext(ctx, "word corrected", "word_id", id, "variants", len(variants))
	return e, nil
}

// CreateEntry inserts a new entry with the next free occurrence number for
// its base word, together with its variants, in one transaction.
func (s *Service) CreateEntry(ctx context.Context, passcode string, input EntryInput) (*domain.Entry, error) {
	if err := s.Authorize(passcode); err != nil {
		s.log.WarnContext(ctx, "admin create rejected", "reason", err.Error())
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e := input.entry(0)
	var variants []domain.Variant

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.words.Create(ctx, e); err != nil {
			return err
		}
		variants = input.variants(e.ID)
		if err := s.variants.InsertMany(ctx, variants); err != nil {
			return fmt.Errorf("insert variants: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}

	e.Variants = variantNames(variants)
	s.log.InfoContext(ctx, "word created",
		"word_id", e.ID, "occurrence", e.OccurrenceNumber, "variants", len(variants))
	return e, nil
}

func variantNames(variants []domain.Variant) []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Variant
	}
	return names
}
