package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/report"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/testhelper"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/word"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

func newRepo(t *testing.T) (*report.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return report.New(pool), pool
}

func findReport(t *testing.T, reports []domain.Report, id int64) domain.Report {
	t.Helper()
	for _, r := range reports {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("report %d not listed", id)
	return domain.Report{}
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	e := testhelper.SeedEntry(t, pool, "rpt"+testhelper.UniqueSuffix(), testhelper.EntryOpts{})

	desc := "meaning is wrong"
	rep := &domain.Report{
		WordID:      e.ID,
		WordText:    e.Word,
		ErrorTypes:  []string{"meaning", "etymology"},
		Description: &desc,
	}
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if rep.ID == 0 || rep.CreatedAt.IsZero() {
		t.Errorf("expected generated id and timestamp, got %+v", rep)
	}
	if rep.Status != domain.ReportStatusPending {
		t.Errorf("Status: got %q, want pending", rep.Status)
	}

	got, err := repo.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.WordText != e.Word || len(got.ErrorTypes) != 2 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CurrentWordText == nil || *got.CurrentWordText != e.Word {
		t.Errorf("CurrentWordText: got %v", got.CurrentWordText)
	}
	if got.SuggestedCorrection != nil {
		t.Errorf("SuggestedCorrection should be nil, got %v", *got.SuggestedCorrection)
	}
}

func TestRepo_Create_UnknownWord(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Create(context.Background(), &domain.Report{WordID: -1, WordText: "x", ErrorTypes: []string{"meaning"}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Create_NoErrorTypesRejectedByStore(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	e := testhelper.SeedEntry(t, pool, "rpt"+testhelper.UniqueSuffix(), testhelper.EntryOpts{})

	err := repo.Create(context.Background(), &domain.Report{WordID: e.ID, WordText: e.Word, ErrorTypes: []string{}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestRepo_List_ReflectsCurrentWord(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	e := testhelper.SeedEntry(t, pool, "snap"+testhelper.UniqueSuffix(), testhelper.EntryOpts{})
	older := testhelper.SeedReport(t, pool, e)
	newer := testhelper.SeedReport(t, pool, e, "spelling")

	corrected := &domain.Entry{ID: e.ID, Word: e.Word + "-fixed"}
	if err := word.New(pool).UpdateCorrected(ctx, corrected, "admin"); err != nil {
		t.Fatalf("UpdateCorrected: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	got := findReport(t, list, older.ID)
	if got.WordText != e.Word {
		t.Errorf("snapshot changed: got %q, want %q", got.WordText, e.Word)
	}
	if got.CurrentWordText == nil || *got.CurrentWordText != e.Word+"-fixed" {
		t.Errorf("CurrentWordText: got %v", got.CurrentWordText)
	}
	if !got.IsWordCorrected {
		t.Error("expected IsWordCorrected")
	}

	var posOlder, posNewer int
	for i, r := range list {
		switch r.ID {
		case older.ID:
			posOlder = i
		case newer.ID:
			posNewer = i
		}
	}
	if posNewer > posOlder {
		t.Errorf("expected newest first: newer at %d, older at %d", posNewer, posOlder)
	}
}

func TestRepo_UpdateStatus(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	e := testhelper.SeedEntry(t, pool, "st"+testhelper.UniqueSuffix(), testhelper.EntryOpts{})
	rep := testhelper.SeedReport(t, pool, e)

	if err := repo.UpdateStatus(ctx, rep.ID, domain.ReportStatusReviewed); err != nil {
		t.Fatalf("UpdateStatus: unexpected error: %v", err)
	}
	got, err := repo.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Status != domain.ReportStatusReviewed {
		t.Errorf("Status: got %q, want reviewed", got.Status)
	}

	if err := repo.UpdateStatus(ctx, -1, domain.ReportStatusReviewed); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown report, got: %v", err)
	}
	if err := repo.UpdateStatus(ctx, rep.ID, "bogus"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for bogus status, got: %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	e := testhelper.SeedEntry(t, pool, "del"+testhelper.UniqueSuffix(), testhelper.EntryOpts{})
	rep := testhelper.SeedReport(t, pool, e)

	if err := repo.Delete(ctx, rep.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, rep.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := repo.Delete(ctx, rep.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got: %v", err)
	}
}
