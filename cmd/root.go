// Package cmd wires configuration, database and adapters into the CLI
// commands: serve, report, migrate and seed.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"adpace/internal/adapter/postgres"
	"adpace/internal/adapter/usecase"
	"adpace/internal/config"
	"adpace/internal/db"
)

var rootCmd = &cobra.Command{
	Use:   "adpace",
	Short: "Ad spend rollups, budget pacing and weekly forecasts",
	Long: "adpace ingests per-day line-item delivery records and derives " +
		"multi-grain rollup tables, budget pacing status and a 12-week " +
		"budget/forecast outlook.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the structured logger from the Log config section.
func newLogger(cfg config.Config) *slog.Logger {
	var handler slog.Handler
	level := cfg.Log.SlogLevel()
	switch cfg.Log.SlogFormat() {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// buildUseCase is the shared wiring path used by serve and report: load
// config, open the pool, construct repositories and the report usecase.
// The caller owns the returned pool.
func buildUseCase(ctx context.Context) (*usecase.ReportUseCase, *pgxpool.Pool, config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, nil, err
	}
	logger := newLogger(cfg)

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, nil, cfg, logger, err
	}

	svc := usecase.NewReportUseCase(
		postgres.NewRecordRepository(pool),
		postgres.NewCampaignRepository(pool),
		postgres.NewRollupRepository(pool),
		usecase.Config{
			Timezone:    cfg.Report.Timezone,
			WeeksPast:   cfg.Report.WeeksPast,
			WeeksFuture: cfg.Report.WeeksFuture,
		},
	)
	return svc, pool, cfg, logger, nil
}
