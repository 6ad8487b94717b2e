// Command sniper-sweep evaluates a batch of scraped listings against the
// sale history and writes a ranked, compressed snapshot of the decision
// signals. With -cron it keeps re-running on the configured schedule, the way
// the overnight FMV refill used to.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/g1nlyf/bikewerk/internal/analyzer"
	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
	"github.com/g1nlyf/bikewerk/internal/sweep"
	"github.com/g1nlyf/bikewerk/internal/valuation"
)

func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "path to YAML config")
		listingsPath = flag.String("listings", "", "path to JSON listings file (required)")
		cronMode     = flag.Bool("cron", false, "keep sweeping on the configured schedule")
		retention    = flag.Duration("retention", 7*24*time.Hour, "snapshot retention window")
		debug        = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *listingsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: sniper-sweep -listings <file.json> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using system environment")
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := history.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	store := history.NewPostgresStore(pool)

	an := analyzer.New(store, cfg.Analyzer, logger)
	engine := valuation.NewEngine(store, an, cfg.Valuation, logger)
	sweeper := sweep.New(engine, *cfg, logger)

	snapshots, err := sweep.NewSnapshotStore(cfg.Sweep.SnapshotDir)
	if err != nil {
		logger.Error("snapshot store init failed", "error", err)
		os.Exit(1)
	}

	run := func() {
		listings, err := readListings(*listingsPath)
		if err != nil {
			logger.Error("read listings failed", "error", err)
			return
		}

		runCtx, cancel := context.WithTimeout(ctx, cfg.Sweep.Timeout)
		defer cancel()

		report, err := sweeper.Run(runCtx, listings)
		if err != nil {
			logger.Error("sweep aborted", "error", err)
			return
		}

		path, err := snapshots.Save(report)
		if err != nil {
			logger.Error("snapshot save failed", "error", err)
			return
		}
		logger.Info("snapshot written", "path", path)

		if err := snapshots.Prune(*retention); err != nil {
			logger.Warn("snapshot prune failed", "error", err)
		}
	}

	if !*cronMode {
		run()
		return
	}

	schedule := cfg.Sweep.CronSchedule
	if schedule == "" {
		schedule = "0 * * * *" // hourly
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, run); err != nil {
		logger.Error("invalid cron schedule", "schedule", schedule, "error", err)
		os.Exit(1)
	}

	logger.Info("sweep scheduler started", "schedule", schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("sweep scheduler stopped")
}

func readListings(path string) ([]model.ListingCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}

	var listings []model.ListingCandidate
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parse listings json: %w", err)
	}
	return listings, nil
}
