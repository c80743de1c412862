package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/internal/service/admin"
)

// PasscodeHeader carries the admin passcode.
const PasscodeHeader = "X-Admin-Passcode"

// adminService defines the corpus mutations needed by AdminHandler.
type adminService interface {
	UpdateEntry(ctx context.Context, passcode string, id int64, input admin.EntryInput) (*domain.Entry, error)
	CreateEntry(ctx context.Context, passcode string, input admin.EntryInput) (*domain.Entry, error)
}

// AdminHandler serves the passcode-gated entry editing endpoints.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

// entryRequest is the body of entry create and update calls. Normalized
// columns are derived server-side; a client-sent word_normalized is ignored.
type entryRequest struct {
	Passcode       string   `json:"passcode"`
	Word           string   `json:"word"`
	Meaning        *string  `json:"meaning"`
	EtymologyType  *string  `json:"etymology_type"`
	CrossReference *string  `json:"cross_reference"`
	FullEntryText  *string  `json:"full_entry_text"`
	Variants       []string `json:"variants"`
}

func (req entryRequest) input() admin.EntryInput {
	return admin.EntryInput{
		Word:           req.Word,
		Meaning:        req.Meaning,
		EtymologyType:  req.EtymologyType,
		CrossReference: req.CrossReference,
		FullEntryText:  req.FullEntryText,
		Variants:       req.Variants,
	}
}

// UpdateWord handles PUT /api/search/admin/word/{id}.
func (h *AdminHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	e, err := h.svc.UpdateEntry(r.Context(), passcode(r, req.Passcode), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeMessage(w, "entry updated", toEntryResponse(*e))
}

// CreateWord handles POST /api/search/admin/word.
func (h *AdminHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	e, err := h.svc.CreateEntry(r.Context(), passcode(r, req.Passcode), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dataResponse{Success: true, Message: "entry created", Data: toEntryResponse(*e)})
}

// passcode returns the admin passcode from the header, falling back to the
// value decoded from the body.
func passcode(r *http.Request, fromBody string) string {
	if v := strings.TrimSpace(r.Header.Get(PasscodeHeader)); v != "" {
		return v
	}
	return fromBody
}

// passcodeBody is the optional body of report admin calls.
type passcodeBody struct {
	Passcode string `json:"passcode"`
	Status   string `json:"status"`
}

// decodeOptionalBody reads a passcodeBody, treating an absent body as empty.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request) (passcodeBody, error) {
	var body passcodeBody
	if r.Body == nil || r.Body == http.NoBody {
		return body, nil
	}
	if err := decodeJSON(w, r, &body); err != nil && !errors.Is(err, errEmptyBody) {
		return body, err
	}
	return body, nil
}
