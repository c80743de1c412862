package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

const loaderWait = 2 * time.Millisecond

// newVariantLoader returns a loader that fetches the variants of many entries
// with one repository call. A loader is created per assembly so nothing is
// cached across requests.
func newVariantLoader(repo variantRepo, capacity int) *dataloader.Loader[int64, []string] {
	return dataloader.NewBatchedLoader(
		variantsBatchFn(repo),
		dataloader.WithWait[int64, []string](loaderWait),
		dataloader.WithBatchCapacity[int64, []string](capacity),
	)
}

func variantsBatchFn(repo variantRepo) dataloader.BatchFunc[int64, []string] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[[]string] {
		variants, err := repo.GetByEntryIDs(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[[]string], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[[]string]{Error: err}
			}
			return results
		}

		grouped := make(map[int64][]string, len(keys))
		for _, v := range variants {
			grouped[v.EntryID] = append(grouped[v.EntryID], v.Variant)
		}

		results := make([]*dataloader.Result[[]string], len(keys))
		for i, key := range keys {
			list, ok := grouped[key]
			if !ok {
				list = []string{}
			}
			results[i] = &dataloader.Result[[]string]{Data: list}
		}
		return results
	}
}

// attachVariants fills Variants on every entry using a single batched load.
func (s *Service) attachVariants(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	loader := newVariantLoader(s.variants, max(len(ids), 1))
	lists, errs := loader.LoadMany(ctx, ids)()
	for i := range entries {
		if i < len(errs) && errs[i] != nil {
			return fmt.Errorf("load variants of word %d: %w", entries[i].ID, errs[i])
		}
		entries[i].Variants = lists[i]
	}
	return nil
}

// assembleDetail resolves the variants, cross-reference and sibling
// occurrences of e concurrently. An unresolvable cross-reference is not an
// error.
func (s *Service) assembleDetail(ctx context.Context, e domain.Entry) (*domain.EntryDetail, error) {
	var (
		entries = []domain.Entry{e}
		ref     *domain.EntrySummary
		others  []domain.Occurrence
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.attachVariants(gctx, entries)
	})

	if e.CrossReference != nil && *e.CrossReference != "" {
		g.Go(func() error {
			found, err := s.words.GetFirstByWord(gctx, *e.CrossReference)
			switch {
			case err == nil:
				ref = found
			case isNotFound(err):
				s.log.DebugContext(gctx, "cross-reference unresolved",
					"word_id", e.ID, "cross_reference", *e.CrossReference)
			default:
				return fmt.Errorf("resolve cross-reference of word %d: %w", e.ID, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		list, err := s.words.ListOccurrences(gctx, e.Word, e.ID)
		if err != nil {
			return fmt.Errorf("list occurrences of word %d: %w", e.ID, err)
		}
		others = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.EntryDetail{
		Entry:                entries[0],
		CrossReferenceDetail: ref,
		OtherOccurrences:     others,
	}, nil
}
