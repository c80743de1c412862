package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/internal/service/report"
)

// reportService defines the operations needed by ReportHandler.
type reportService interface {
	Create(ctx context.Context, input report.CreateInput) (*domain.Report, error)
	List(ctx context.Context, passcode string) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, passcode string, id int64, status domain.ReportStatus) error
	Delete(ctx context.Context, passcode string, id int64) error
}

// ReportHandler serves /api/reports.
type ReportHandler struct {
	svc reportService
	log *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report")}
}

type createReportRequest struct {
	WordID              int64    `json:"word_id"`
	WordText            string   `json:"word_text"`
	ErrorTypes          []string `json:"error_types"`
	SuggestedCorrection string   `json:"suggested_correction"`
	Description         string   `json:"description"`
}

// Create handles POST /api/reports. Open to everyone.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	rep, err := h.svc.Create(r.Context(), report.CreateInput{
		WordID:              req.WordID,
		WordText:            req.WordText,
		ErrorTypes:          req.ErrorTypes,
		SuggestedCorrection: req.SuggestedCorrection,
		Description:         req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dataResponse{
		Success: true,
		Message: "report created",
		Data:    toReportResponse(*rep),
	})
}

// List handles GET /api/reports/admin.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.List(r.Context(), passcode(r, r.URL.Query().Get("passcode")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]reportResponse, len(reports))
	for i, rep := range reports {
		out[i] = toReportResponse(rep)
	}
	writeData(w, http.StatusOK, out)
}

// UpdateStatus handles PUT /api/reports/admin/{id}.
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	body, err := decodeOptionalBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	status := domain.ReportStatus(body.Status)
	if err := h.svc.UpdateStatus(r.Context(), reportPasscode(r, body), id, status); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeMessage(w, "report updated", map[string]any{"id": id, "status": status.String()})
}

// Delete handles DELETE /api/reports/admin/{id}.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	body, err := decodeOptionalBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	if err := h.svc.Delete(r.Context(), reportPasscode(r, body), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeMessage(w, "report deleted", nil)
}

// reportPasscode checks header, then query string, then body.
func reportPasscode(r *http.Request, body passcodeBody) string {
	if v := r.URL.Query().Get("passcode"); v != "" {
		return passcode(r, v)
	}
	return passcode(r, body.Passcode)
}
