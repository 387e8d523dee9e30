package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/civicpulse/internal/batch"
	"github.com/jonathan/civicpulse/internal/db"
	"github.com/jonathan/civicpulse/internal/observability"
)

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Recalculate scores and ranks for every active representative",
	Long: `Refreshes every active representative's unified scorecard, movement
deltas and ranking position. Safe to run repeatedly; the job is idempotent
against unchanged data.`,
	RunE: runRecalculate,
}

var (
	recalcConfigPath  string
	recalcDBURL       string
	recalcConcurrency int
	recalcVerbose     bool
)

func init() {
	recalculateCmd.Flags().StringVar(&recalcConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	recalculateCmd.Flags().IntVar(&recalcConcurrency, "concurrency", 0, "Representatives recalculated in parallel (default 10)")
	recalculateCmd.Flags().BoolVarP(&recalcVerbose, "verbose", "v", false, "Print detailed progress information")
	recalculateCmd.Flags().StringVar(&recalcDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(recalculateCmd)
}

func runRecalculate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, recalcConfigPath, "", recalcDBURL, recalcVerbose)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = recalcConcurrency
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	job := batch.NewJob(database)
	job.SetConcurrency(cfg.Concurrency)

	summary, err := job.Run(ctx)
	if err != nil {
		return fmt.Errorf("recalculation failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintBatchSummary(summary)
	return nil
}
