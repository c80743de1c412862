package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etimoloji/clauson-dictionary/internal/config"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/internal/service/admin"
	"github.com/etimoloji/clauson-dictionary/internal/service/report"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockLookup struct {
	SearchFunc       func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error)
	GetEntryFunc     func(ctx context.Context, id int64) (*domain.EntryDetail, error)
	AutocompleteFunc func(ctx context.Context, term string, limit int) ([]string, error)
	StatisticsFunc   func(ctx context.Context) (*domain.Statistics, error)
	EtymologiesFunc  func(ctx context.Context) ([]string, error)
	RandomFunc       func(ctx context.Context) (*domain.Entry, error)
}

func (m *mockLookup) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return &domain.SearchResult{Items: []domain.Entry{}, Page: 1, PageSize: 15}, nil
}

func (m *mockLookup) GetEntry(ctx context.Context, id int64) (*domain.EntryDetail, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLookup) Autocomplete(ctx context.Context, term string, limit int) ([]string, error) {
	if m.AutocompleteFunc != nil {
		return m.AutocompleteFunc(ctx, term, limit)
	}
	return []string{}, nil
}

func (m *mockLookup) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if m.StatisticsFunc != nil {
		return m.StatisticsFunc(ctx)
	}
	return &domain.Statistics{}, nil
}

func (m *mockLookup) Etymologies(ctx context.Context) ([]string, error) {
	if m.EtymologiesFunc != nil {
		return m.EtymologiesFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockLookup) Random(ctx context.Context) (*domain.Entry, error) {
	if m.RandomFunc != nil {
		return m.RandomFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

type mockAdmin struct {
	UpdateEntryFunc func(ctx context.Context, passcode string, id int64, input admin.EntryInput) (*domain.Entry, error)
	CreateEntryFunc func(ctx context.Context, passcode string, input admin.EntryInput) (*domain.Entry, error)
}

func (m *mockAdmin) UpdateEntry(ctx context.Context, passcode string, id int64, input admin.EntryInput) (*domain.Entry, error) {
	if m.UpdateEntryFunc != nil {
		return m.UpdateEntryFunc(ctx, passcode, id, input)
	}
	return &domain.Entry{ID: id, Word: input.Word}, nil
}

func (m *mockAdmin) CreateEntry(ctx context.Context, passcode string, input admin.EntryInput) (*domain.Entry, error) {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, passcode, input)
	}
	return &domain.Entry{ID: 1, Word: input.Word, OccurrenceNumber: 1}, nil
}

type mockReports struct {
	CreateFunc       func(ctx context.Context, input report.CreateInput) (*domain.Report, error)
	ListFunc         func(ctx context.Context, passcode string) ([]domain.Report, error)
	UpdateStatusFunc func(ctx context.Context, passcode string, id int64, status domain.ReportStatus) error
	DeleteFunc       func(ctx context.Context, passcode string, id int64) error
}

func (m *mockReports) Create(ctx context.Context, input report.CreateInput) (*domain.Report, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	return &domain.Report{ID: 1, WordID: input.WordID, ErrorTypes: input.ErrorTypes, Status: domain.ReportStatusPending}, nil
}

func (m *mockReports) List(ctx context.Context, passcode string) ([]domain.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, passcode)
	}
	return []domain.Report{}, nil
}

func (m *mockReports) UpdateStatus(ctx context.Context, passcode string, id int64, status domain.ReportStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, passcode, id, status)
	}
	return nil
}

func (m *mockReports) Delete(ctx context.Context, passcode string, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, passcode, id)
	}
	return nil
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	lookup  *mockLookup
	admin   *mockAdmin
	reports *mockReports
}

func newTestRouter(t *testing.T, deps testDeps) http.Handler {
	t.Helper()

	if deps.lookup == nil {
		deps.lookup = &mockLookup{}
	}
	if deps.admin == nil {
		deps.admin = &mockAdmin{}
	}
	if deps.reports == nil {
		deps.reports = &mockReports{}
	}

	logger := slog.New(slog.DiscardHandler)
	return NewRouter(Handlers{
		Health: NewHealthHandler(&dbPingerMock{}, &corpusCounterMock{n: 1}, "test"),
		Search: NewSearchHandler(deps.lookup, 0.3, logger),
		Admin:  NewAdminHandler(deps.admin, logger),
		Report: NewReportHandler(deps.reports, logger),
	}, RouterConfig{
		CORS: config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS", MaxAge: 60},
	}, logger)
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func strPtr(s string) *string { return &s }
