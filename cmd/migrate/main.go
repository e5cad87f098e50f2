package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"bookshelf/internal/config"
	"bookshelf/internal/platform/postgres"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	opts, err := parseOptions(os.Args[1:], cfg.MigrationsDir, os.Stderr)
	if err != nil {
		logger.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, opts, logger); err != nil {
		logger.Error("migration failed", "command", opts.command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, logger *slog.Logger) error {
	goose.SetLogger(gooseLogger{logger})

	if opts.command == "create" {
		if err := goose.Create(nil, opts.dir, opts.name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		return nil
	}

	pool, err := postgres.Open(ctx, postgres.Config{DSN: cfg.DatabaseDSN, MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected", "dsn", postgres.RedactDSN(cfg.DatabaseDSN), "dir", opts.dir)

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return apply(ctx, db, opts)
}

func apply(ctx context.Context, db *sql.DB, opts options) error {
	switch opts.command {
	case "up":
		return goose.UpContext(ctx, db, opts.dir)
	case "down":
		return goose.DownContext(ctx, db, opts.dir)
	case "status":
		return goose.StatusContext(ctx, db, opts.dir)
	case "version":
		return goose.VersionContext(ctx, db, opts.dir)
	}
	return fmt.Errorf("unknown command %q", opts.command)
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
