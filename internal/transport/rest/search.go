package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// lookupService defines the read operations needed by SearchHandler.
type lookupService interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error)
	GetEntry(ctx context.Context, id int64) (*domain.EntryDetail, error)
	Autocomplete(ctx context.Context, term string, limit int) ([]string, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
	Etymologies(ctx context.Context) ([]string, error)
	Random(ctx context.Context) (*domain.Entry, error)
}

// SearchHandler serves the public lookup endpoints under /api/search.
type SearchHandler struct {
	svc          lookupService
	defaultFuzzy float64
	log          *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc lookupService, defaultFuzzy float64, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, defaultFuzzy: defaultFuzzy, log: logger.With("handler", "search")}
}

// Search handles GET /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := parseSearchRequest(r.URL.Query(), h.defaultFuzzy)

	result, err := h.svc.Search(r.Context(), req)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	echo := req.Clamp()
	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Query: searchQueryResponse{
			Term:           echo.Term,
			SearchIn:       echo.Field.String(),
			SearchMode:     echo.Mode.String(),
			Etymology:      echo.Etymology,
			LetterMode:     echo.LetterMode,
			FuzzyThreshold: echo.Fuzzy,
		},
		Results:    toEntryResponses(result.Items),
		Count:      len(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// Word handles GET /api/search/word/{id}.
func (h *SearchHandler) Word(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, toEntryDetailResponse(detail))
}

// Autocomplete handles GET /api/search/autocomplete.
func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	suggestions, err := h.svc.Autocomplete(r.Context(), q.Get("q"), queryInt(q, "limit", 0))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, autocompleteResponse{Success: true, Suggestions: suggestions})
}

// Statistics handles GET /api/search/statistics.
func (h *SearchHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statisticsResponse{Success: true, Statistics: toStatisticsBody(stats)})
}

// Etymologies handles GET /api/search/etymologies.
func (h *SearchHandler) Etymologies(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.Etymologies(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, types)
}

// Random handles GET /api/search/random.
func (h *SearchHandler) Random(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Random(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, toEntryResponse(*e))
}

// ---------------------------------------------------------------------------
// Query parsing
// ---------------------------------------------------------------------------

// parseSearchRequest maps query parameters onto a SearchRequest. Malformed
// numbers fall back to defaults; range checks are left to the service.
// The legacy type parameter (turkish, english, both) is honoured when
// searchIn is absent.
func parseSearchRequest(q url.Values, defaultFuzzy float64) domain.SearchRequest {
	field := domain.SearchField(q.Get("searchIn"))
	if field == "" && q.Get("type") == "english" {
		field = domain.SearchFieldMeaning
	}

	fuzzy := defaultFuzzy
	if v, err := strconv.ParseFloat(q.Get("fuzzy"), 64); err == nil {
		fuzzy = v
	}

	return domain.SearchRequest{
		Term:       q.Get("q"),
		Field:      field,
		Mode:       domain.SearchMode(q.Get("searchMode")),
		Etymology:  q.Get("etymology"),
		LetterMode: queryBool(q, "letterMode"),
		Page:       queryInt(q, "page", 1),
		PageSize:   queryInt(q, "limit", 0),
		Fuzzy:      fuzzy,
	}
}

func queryInt(q url.Values, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return def
	}
	return v
}

func queryBool(q url.Values, key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(q.Get(key)))
	return err == nil && b
}

// pathID parses the {id} path value, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid id",
			Fields: []fieldErrorResponse{{Field: "id", Message: "must be a positive integer"}},
		})
		return 0, false
	}
	return id, true
}
