package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/report"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/variant"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/word"
	"github.com/etimoloji/clauson-dictionary/internal/config"
	"github.com/etimoloji/clauson-dictionary/internal/service/admin"
	"github.com/etimoloji/clauson-dictionary/internal/service/lookup"
	reportsvc "github.com/etimoloji/clauson-dictionary/internal/service/report"
	"github.com/etimoloji/clauson-dictionary/internal/transport/middleware"
	"github.com/etimoloji/clauson-dictionary/internal/transport/rest"
)

// Run is the server entry point. It loads configuration from configPath
// (see config.LoadFrom), connects to the database, wires repositories,
// services and handlers, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(logConfig(cfg))

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	handler, stop := NewHandler(cfg, pool, logger)
	defer stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// logConfig returns cfg.Log with debug raised to info in production, so
// internal error detail logged at debug never reaches production logs.
func logConfig(cfg *config.Config) config.LogConfig {
	lc := cfg.Log
	if cfg.App.IsProduction() && parseLevel(lc.Level) < slog.LevelInfo {
		lc.Level = "info"
	}
	return lc
}

// NewHandler wires repositories, services and handlers over pool and
// returns the routed HTTP handler. The returned func releases background
// resources and must be called once the handler is no longer served.
func NewHandler(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, func()) {
	// Repositories.
	words := word.New(pool)
	variants := variant.New(pool)
	reports := report.New(pool)
	txm := postgres.NewTxManager(pool)

	// Services.
	lookupSvc := lookup.NewService(logger, words, variants, cfg.Search)
	adminSvc := admin.NewService(logger, words, variants, txm, cfg.Admin.Secret(cfg.App))
	reportSvc := reportsvc.NewService(logger, reports, words, adminSvc)

	if !adminSvc.Enabled() {
		logger.Warn("admin passcode not configured, admin endpoints are disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handler := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(pool, words, BuildVersion()),
		Search: rest.NewSearchHandler(lookupSvc, cfg.Search.DefaultFuzzy, logger),
		Admin:  rest.NewAdminHandler(adminSvc, logger),
		Report: rest.NewReportHandler(reportSvc, logger),
	}, rest.RouterConfig{
		CORS:        cfg.CORS,
		TrustProxy:  cfg.Server.TrustProxy,
		Limiter:     limiter,
		ReportLimit: cfg.RateLimit.ReportsPerMinute,
		AdminLimit:  cfg.RateLimit.AdminPerMinute,
	}, logger)

	return handler, limiter.Stop
}

// serve runs srv until it fails or ctx is done, then shuts it down within
// shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
