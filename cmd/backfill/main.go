package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simaogato/geohash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/geohash-backend/internal/adapter/resolver/crox"
	"github.com/simaogato/geohash-backend/internal/config"
	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/logger"
	"github.com/simaogato/geohash-backend/internal/usecase/backfill"
)

func main() {
	fromFlag := flag.String("from", "", "first date to backfill (YYYY-MM-DD)")
	toFlag := flag.String("to", time.Now().Format(domain.DateLayout), "last date to backfill (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init("geohash-backfill", logger.ParseLevel(cfg.LogLevel))

	from, err := domain.ParseDate(*fromFlag)
	if err != nil {
		log.Error("invalid -from", slog.Any("error", err))
		os.Exit(2)
	}
	to, err := domain.ParseDate(*toFlag)
	if err != nil {
		log.Error("invalid -to", slog.Any("error", err))
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.PostgresConnString())
	if err != nil {
		log.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error("failed to create schema", slog.Any("error", err))
		os.Exit(1)
	}

	backfiller := backfill.NewBackfiller(
		crox.NewClient(cfg.DJIAURL, cfg.DJIATimeout),
		postgres.NewMarketValueRepository(db),
	)

	report, err := backfiller.Run(ctx, from, to)
	if report != nil {
		log.Info("backfill finished",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
			slog.Int("stored", report.Stored),
			slog.Int("present", report.Present),
			slog.Int("skipped", report.Skipped),
		)
	}
	if err != nil {
		log.Error("backfill failed", slog.Any("error", err))
		os.Exit(1)
	}
}
