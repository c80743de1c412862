package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etimoloji/clauson-dictionary/pkg/ctxutil"
)

// logRecord runs handler behind Logger and decodes the single JSON record.
func logRecord(t *testing.T, req *http.Request, handler http.HandlerFunc) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log record %q: %v", buf.String(), err)
	}
	return rec
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "INFO"},
		{http.StatusForbidden, "WARN"},
		{http.StatusTooManyRequests, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
		{http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			rec := logRecord(t, httptest.NewRequest(http.MethodPost, "/api/reports", nil),
				func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(tt.status) })

			if rec["level"] != tt.level {
				t.Errorf("expected level %s, got %v", tt.level, rec["level"])
			}
			if rec["status"] != float64(tt.status) {
				t.Errorf("expected status %d, got %v", tt.status, rec["status"])
			}
		})
	}
}

func TestLogger_RequestFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.RemoteAddr = "198.51.100.4:9000"
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "test-request-id-123"))

	rec := logRecord(t, req, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	want := map[string]any{
		"msg":        "http.request",
		"method":     "GET",
		"path":       "/api/search",
		"status":     float64(200),
		"bytes":      float64(5),
		"request_id": "test-request-id-123",
		"client_ip":  "198.51.100.4",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %v", k, rec[k], v)
		}
	}
	if _, ok := rec["duration"]; !ok {
		t.Error("expected duration in log record")
	}
}

func TestStatusWriter_FirstStatusWins(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	_, _ = sw.Write([]byte("ab"))
	sw.WriteHeader(http.StatusTeapot)
	_, _ = sw.Write([]byte("c"))

	if sw.status != http.StatusOK {
		t.Errorf("expected implicit 200 to stick, got %d", sw.status)
	}
	if sw.bytes != 3 {
		t.Errorf("expected 3 bytes counted, got %d", sw.bytes)
	}
}
