package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/config"
	apphttp "bookshelf/internal/http"
	"bookshelf/internal/httpx"
	"bookshelf/internal/lending"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/report"
	"bookshelf/internal/repository"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	dbPool, err := postgres.Open(ctx, postgres.Config{DSN: cfg.DatabaseDSN, MaxConns: cfg.DBMaxConns})
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("database connection OK", "dsn", postgres.RedactDSN(cfg.DatabaseDSN))

	repos := lending.NewRepositories(dbPool,
		repository.WithTimeout(cfg.DBQueryTimeout),
		repository.WithLogger(logger),
	)
	service := lending.NewService(dbPool, repos, lending.WithLogger(logger))
	reports := report.NewGenerator(repos.Issuances, repos.Readers, repos.Books, repos.Authors)

	handler := newHandler(ctx, cfg, logger, apphttp.Deps{
		Publishers: repos.Publishers,
		Authors:    repos.Authors,
		Readers:    repos.Readers,
		Books:      repos.Books,
		Issuances:  repos.Issuances,
		Lending:    service,
		Reports:    reports,
		DB:         dbPool,
		Logger:     logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newHandler wraps the router in the middleware stack. The first middleware
// sees the request first.
func newHandler(ctx context.Context, cfg config.Config, logger *slog.Logger, deps apphttp.Deps) http.Handler {
	limiter := httpx.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return httpx.Chain(apphttp.NewRouter(deps),
		httpx.RequestID,
		httpx.AccessLog(logger),
		httpx.Recovery(logger),
		httpx.SecurityHeaders,
		httpx.CORS(cfg.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimit(cfg.MaxBodyBytes),
	)
}
