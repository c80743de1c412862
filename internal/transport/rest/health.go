package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// corpusCounter reports how many entries are loaded. An empty corpus is
// healthy but worth surfacing: it usually means the import never ran.
type corpusCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	db      dbPinger
	corpus  corpusCounter
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, corpus corpusCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, corpus: corpus, version: version}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Entries *int   `json:"entries,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the database is reachable, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports database latency and corpus size along with the build
// version. A failed count marks the corpus degraded without failing the
// probe; an unreachable database fails it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: make(map[string]CompStatus, 2),
	}

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "down"
		resp.Components["database"] = CompStatus{Status: "down"}
		resp.Timestamp = time.Now()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}

	if h.corpus != nil {
		n, err := h.corpus.Count(ctx)
		switch {
		case err != nil:
			resp.Components["corpus"] = CompStatus{Status: "degraded"}
		case n == 0:
			resp.Components["corpus"] = CompStatus{Status: "empty", Entries: &n}
		default:
			resp.Components["corpus"] = CompStatus{Status: "ok", Entries: &n}
		}
	}

	resp.Timestamp = time.Now()
	writeJSON(w, http.StatusOK, resp)
}
