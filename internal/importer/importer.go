// Package importer loads the corpus JSON files into the store. It assigns
// homograph occurrence numbers, derives every normalized column and writes
// entries and variants in batches.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

const defaultBatchSize = 500

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryStore interface {
	Truncate(ctx context.Context) error
	BulkInsert(ctx context.Context, entries []domain.Entry) ([]int64, error)
}

type variantStore interface {
	BulkInsert(ctx context.Context, variants []domain.Variant) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// FileResult holds the outcome of importing one file.
type FileResult struct {
	Path     string
	Entries  int
	Variants int
	Skipped  int
	Err      error
}

// Summary aggregates a whole run.
type Summary struct {
	Files    []FileResult
	Entries  int
	Variants int
	Skipped  int
	Duration time.Duration
}

// HasErrors reports whether any file failed.
func (s Summary) HasErrors() bool {
	for _, f := range s.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Importer
// ---------------------------------------------------------------------------

// Importer runs a corpus import.
type Importer struct {
	log      *slog.Logger
	entries  entryStore
	variants variantStore
	tx       txManager
	cfg      Config
}

// New creates an Importer.
func New(log *slog.Logger, entries entryStore, variants variantStore, tx txManager, cfg Config) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Importer{
		log:      log.With("component", "importer"),
		entries:  entries,
		variants: variants,
		tx:       tx,
		cfg:      cfg,
	}
}

// pending is an entry waiting for its batch, with its variants kept apart
// until the entry id is known.
type pending struct {
	entry    domain.Entry
	variants []string
}

// Run imports every file under the data directory. Occurrence numbers are
// counted per base word across all files in file-then-entry order. A file
// that cannot be read or parsed is recorded and skipped; a store failure
// aborts the run.
func (im *Importer) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var sum Summary

	files, err := listFiles(im.cfg.DataDir)
	if err != nil {
		return sum, err
	}
	im.log.Info("import starting",
		slog.String("data_dir", im.cfg.DataDir),
		slog.Int("files", len(files)),
		slog.Bool("dry_run", im.cfg.DryRun),
		slog.Bool("truncate", im.cfg.Truncate),
	)

	if im.cfg.Truncate && !im.cfg.DryRun {
		if err := im.entries.Truncate(ctx); err != nil {
			return sum, fmt.Errorf("truncate: %w", err)
		}
	}

	counter := make(map[string]int)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := im.importFile(ctx, path, counter)
		sum.Files = append(sum.Files, res)
		sum.Entries += res.Entries
		sum.Variants += res.Variants
		sum.Skipped += res.Skipped

		if res.Err != nil {
			if isStoreError(res.Err) {
				return sum, res.Err
			}
			im.log.Warn("file skipped", slog.String("file", path), slog.String("error", res.Err.Error()))
			continue
		}
		im.log.Info("file imported",
			slog.String("file", path),
			slog.Int("entries", res.Entries),
			slog.Int("variants", res.Variants),
		)
	}

	sum.Duration = time.Since(start)
	im.log.Info("import completed",
		slog.Int("entries", sum.Entries),
		slog.Int("variants", sum.Variants),
		slog.Int("skipped", sum.Skipped),
		slog.Duration("duration", sum.Duration),
	)
	return sum, nil
}

// storeError marks failures of the store as opposed to bad input files.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

func isStoreError(err error) bool {
	var se *storeError
	return errors.As(err, &se)
}

func (im *Importer) importFile(ctx context.Context, path string, counter map[string]int) FileResult {
	res := FileResult{Path: path}

	raws, err := readFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	batch := make([]pending, 0, im.cfg.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		nv, err := im.writeBatch(ctx, batch)
		if err != nil {
			return &storeError{err: fmt.Errorf("%s: %w", path, err)}
		}
		res.Entries += len(batch)
		res.Variants += nv
		batch = batch[:0]
		return nil
	}

	for _, raw := range raws {
		p, ok := buildEntry(raw, counter)
		if !ok {
			res.Skipped++
			continue
		}
		batch = append(batch, p)
		if len(batch) >= im.cfg.BatchSize {
			if err := flush(); err != nil {
				res.Err = err
				return res
			}
		}
	}
	if err := flush(); err != nil {
		res.Err = err
	}
	return res
}

// writeBatch inserts a batch of entries and then their variants in one
// transaction. In dry-run mode nothing is written and the counts are what
// would have been inserted.
func (im *Importer) writeBatch(ctx context.Context, batch []pending) (int, error) {
	if im.cfg.DryRun {
		n := 0
		for _, p := range batch {
			n += len(p.variants)
		}
		return n, nil
	}

	entries := make([]domain.Entry, len(batch))
	for i, p := range batch {
		entries[i] = p.entry
	}

	var inserted int
	err := im.tx.RunInTx(ctx, func(ctx context.Context) error {
		ids, err := im.entries.BulkInsert(ctx, entries)
		if err != nil {
			return err
		}

		var variants []domain.Variant
		for i, p := range batch {
			for _, v := range p.variants {
				variants = append(variants, domain.NewVariant(ids[i], v))
			}
		}
		inserted, err = im.variants.BulkInsert(ctx, variants)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// buildEntry turns a raw record into an entry. Records with a blank word
// are skipped and do not consume an occurrence number.
func buildEntry(raw rawEntry, counter map[string]int) (pending, bool) {
	word := strings.TrimSpace(raw.Word)
	if word == "" {
		return pending{}, false
	}

	base := domain.BaseWord(word)
	counter[base]++

	e := domain.Entry{
		Meaning:          optional(raw.Meaning),
		EtymologyType:    optional(domain.ExpandEtymology(raw.EtymologyType)),
		CrossReference:   optional(raw.CrossReference),
		FullEntryText:    optional(raw.FullEntryText),
		OccurrenceNumber: counter[base],
	}
	e.ApplyWord(word)

	return pending{entry: e, variants: cleanVariants(raw.Variants)}, true
}

func cleanVariants(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
