// Package report implements the user report subsystem: anyone may file a
// data-quality report against an entry; listing, status changes and
// deletion require the admin passcode.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type reportRepo interface {
	Create(ctx context.Context, rep *domain.Report) error
	List(ctx context.Context) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error
	Delete(ctx context.Context, id int64) error
}

type wordRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
}

type authorizer interface {
	Authorize(passcode string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements report business logic.
type Service struct {
	log     *slog.Logger
	reports reportRepo
	words   wordRepo
	auth    authorizer
}

// NewService creates a new report service.
func NewService(logger *slog.Logger, reports reportRepo, words wordRepo, auth authorizer) *Service {
	return &Service{
		log:     logger.With("service", "report"),
		reports: reports,
		words:   words,
		auth:    auth,
	}
}

// Create files a report. Input is validated before any store access; the
// headword snapshot is taken from the referenced entry when the client did
// not send one.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Report, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rep := input.report()
	if rep.WordText == "" {
		e, err := s.words.GetByID(ctx, rep.WordID)
		if err != nil {
			return nil, err
		}
		rep.WordText = e.Word
	}

	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.InfoContext(ctx, "report created",
		"report_id", rep.ID, "word_id", rep.WordID, "error_types", rep.ErrorTypes)
	return rep, nil
}

// List returns every report, newest first.
func (s *Service) List(ctx context.Context, passcode string) ([]domain.Report, error) {
	if err := s.auth.Authorize(passcode); err != nil {
		return nil, err
	}

	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus moves a report to status.
func (s *Service) UpdateStatus(ctx context.Context, passcode string, id int64, status domain.ReportStatus) error {
	if err := s.auth.Authorize(passcode); err != nil {
		return err
	}
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}
	if !status.IsValid() {
		return domain.NewValidationError("status", "must be one of pending, reviewed, corrected")
	}

	if err := s.reports.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "report status updated", "report_id", id, "status", status.String())
	return nil
}

// Delete removes a report.
func (s *Service) Delete(ctx context.Context, passcode string, id int64) error {
	if err := s.auth.Authorize(passcode); err != nil {
		return err
	}
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "report deleted", "report_id", id)
	return nil
}
