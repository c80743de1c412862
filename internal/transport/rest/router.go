package rest

import (
	"log/slog"
	"net/http"

	"github.com/etimoloji/clauson-dictionary/internal/config"
	"github.com/etimoloji/clauson-dictionary/internal/transport/middleware"
)

// Handlers groups every handler mounted by NewRouter.
type Handlers struct {
	Health *HealthHandler
	Search *SearchHandler
	Admin  *AdminHandler
	Report *ReportHandler
}

// RouterConfig holds the cross-cutting settings applied around the routes.
type RouterConfig struct {
	CORS        config.CORSConfig
	TrustProxy  bool
	Limiter     *middleware.RateLimiter
	ReportLimit int
	AdminLimit  int
}

// NewRouter builds the full HTTP handler: routes plus the middleware chain.
// Report creation and every admin route are rate limited per client.
func NewRouter(h Handlers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/search", h.Search.Search)
	mux.HandleFunc("GET /api/search/word/{id}", h.Search.Word)
	mux.HandleFunc("GET /api/search/autocomplete", h.Search.Autocomplete)
	mux.HandleFunc("GET /api/search/statistics", h.Search.Statistics)
	mux.HandleFunc("GET /api/search/etymologies", h.Search.Etymologies)
	mux.HandleFunc("GET /api/search/random", h.Search.Random)

	admin := limited(cfg.Limiter, cfg.AdminLimit)
	mux.Handle("PUT /api/search/admin/word/{id}", admin(http.HandlerFunc(h.Admin.UpdateWord)))
	mux.Handle("POST /api/search/admin/word", admin(http.HandlerFunc(h.Admin.CreateWord)))

	mux.Handle("POST /api/reports", limited(cfg.Limiter, cfg.ReportLimit)(http.HandlerFunc(h.Report.Create)))
	mux.Handle("GET /api/reports/admin", admin(http.HandlerFunc(h.Report.List)))
	mux.Handle("PUT /api/reports/admin/{id}", admin(http.HandlerFunc(h.Report.UpdateStatus)))
	mux.Handle("DELETE /api/reports/admin/{id}", admin(http.HandlerFunc(h.Report.Delete)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found")
	})

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.TrustProxy),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}

func limited(rl *middleware.RateLimiter, perMinute int) middleware.Middleware {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Limit(perMinute)
}
