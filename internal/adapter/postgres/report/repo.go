// Package report implements persistence for user-submitted data-quality
// reports about dictionary entries.
package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new report repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const reportColumnsSQL = `r.id, r.word_id, r.word_text, r.error_types, r.suggested_correction,
       r.description, r.status, r.created_at, w.word, COALESCE(w.is_corrected, FALSE)`

const createSQL = `
INSERT INTO reports (word_id, word_text, error_types, suggested_correction, description, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

const listSQL = `
SELECT ` + reportColumnsSQL + `
FROM reports r
LEFT JOIN words w ON w.id = r.word_id
ORDER BY r.created_at DESC, r.id DESC`

const getByIDSQL = `
SELECT ` + reportColumnsSQL + `
FROM reports r
LEFT JOIN words w ON w.id = r.word_id
WHERE r.id = $1`

// Create inserts a report. WordText is expected to be the headword snapshot
// at submission time. ID, Status and CreatedAt are written back into rep.
// Returns domain.ErrNotFound if the referenced entry does not exist.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) error {
	if rep.Status == "" {
		rep.Status = domain.ReportStatusPending
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	err := q.QueryRow(ctx, createSQL,
		rep.WordID, rep.WordText, rep.ErrorTypes, rep.SuggestedCorrection, rep.Description, string(rep.Status),
	).Scan(&rep.ID, &rep.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "report for word", rep.WordID)
	}
	return nil
}

// List returns every report, newest first, joined with the referenced
// entry's current headword and correction flag.
func (r *Repo) List(ctx context.Context) ([]domain.Report, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Report, error) {
		return scanReport(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	return reports, nil
}

// GetByID returns a report by primary key.
// Returns domain.ErrNotFound if the report does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rep, err := scanReport(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "report", id)
	}
	return &rep, nil
}

// UpdateStatus sets the review status of a report.
// Returns domain.ErrNotFound if the report does not exist.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE reports SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return postgres.MapError(err, "report", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a report.
// Returns domain.ErrNotFound if the report does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "report", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanReport(row pgx.Row) (domain.Report, error) {
	var (
		rep    domain.Report
		status string
	)
	err := row.Scan(
		&rep.ID, &rep.WordID, &rep.WordText, &rep.ErrorTypes, &rep.SuggestedCorrection,
		&rep.Description, &status, &rep.CreatedAt, &rep.CurrentWordText, &rep.IsWordCorrected,
	)
	if err != nil {
		return domain.Report{}, err
	}
	rep.Status = domain.ReportStatus(status)
	return rep, nil
}
