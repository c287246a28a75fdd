package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/innovatech/hr-portal/internal/app"
	"github.com/innovatech/hr-portal/internal/platform/db"
	"github.com/innovatech/hr-portal/migrations"
)

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	dsn, err := cfg.DSN()
	if err != nil {
		logger.Error("database config", slog.Any("error", err))
		os.Exit(1)
	}
	dbpool, err := db.New(ctx, dsn)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Error("set dialect", slog.Any("error", err))
		os.Exit(1)
	}

	sqldb := stdlib.OpenDBFromPool(dbpool)
	if err := goose.UpContext(ctx, sqldb, "."); err != nil {
		logger.Error("apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
