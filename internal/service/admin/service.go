// Package admin implements the admin mutation gate: passcode authorization
// and transactional edits of dictionary entries.
package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// CorrectedBy is the provenance stamped on entries edited through the gate.
const CorrectedBy = "admin"

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	Create(ctx context.Context, e *domain.Entry) error
	UpdateCorrected(ctx context.Context, e *domain.Entry, correctedBy string) error
}

type variantRepo interface {
	DeleteByEntryID(ctx context.Context, entryID int64) (int64, error)
	InsertMany(ctx context.Context, variants []domain.Variant) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service authorizes admin callers and applies entry mutations.
type Service struct {
	log      *slog.Logger
	words    wordRepo
	variants variantRepo
	tx       txManager
	secret   string
}

// NewService creates a new admin service. An empty secret disables every
// mutation.
func NewService(logger *slog.Logger, words wordRepo, variants variantRepo, tx txManager, secret string) *Service {
	return &Service{
		log:      logger.With("service", "admin"),
		words:    words,
		variants: variants,
		tx:       tx,
		secret:   secret,
	}
}

// Enabled reports whether a passcode is configured.
func (s *Service) Enabled() bool {
	return s.secret != ""
}

// Authorize checks passcode against the configured secret.
// Returns domain.ErrAdminDisabled when no secret is configured and
// domain.ErrUnauthorized when the passcode is missing or wrong.
func (s *Service) Authorize(passcode string) error {
	if s.secret == "" {
		return domain.ErrAdminDisabled
	}
	if passcode == "" {
		return domain.ErrUnauthorized
	}

	if isBcryptHash(s.secret) {
		if bcrypt.CompareHashAndPassword([]byte(s.secret), []byte(passcode)) != nil {
			return domain.ErrUnauthorized
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(s.secret), []byte(passcode)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 &&
		(strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
