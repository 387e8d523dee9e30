package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/civicpulse/internal/db"
	"github.com/jonathan/civicpulse/internal/observability"
	"github.com/jonathan/civicpulse/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the unified scorecard for one representative",
	RunE:  runScore,
}

var (
	scoreConfigPath string
	scoreRepID      string
	scoreDBURL      string
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().StringVarP(&scoreRepID, "rep", "r", "", "Representative UUID (required)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed progress information")
	scoreCmd.Flags().StringVar(&scoreDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	scoreCmd.MarkFlagRequired("rep")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, scoreConfigPath, "", scoreDBURL, scoreVerbose)
	if err != nil {
		return err
	}

	repID, err := uuid.Parse(scoreRepID)
	if err != nil {
		return fmt.Errorf("invalid representative ID: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	rep, err := database.GetRepresentative(ctx, repID)
	if err != nil {
		return err
	}

	record, err := database.RatingRecord(ctx, repID)
	if err != nil {
		return err
	}
	evidence, err := database.EvidenceForRepresentative(ctx, repID)
	if err != nil {
		return err
	}
	activity, err := database.ParliamentaryActivity(ctx, repID)
	if err != nil {
		return err
	}
	trust, err := database.TrustTally(ctx, repID)
	if err != nil {
		return err
	}

	card := scoring.Unified(scoring.Inputs{
		Record:   record,
		Evidence: evidence,
		Activity: activity,
		Trust:    trust,
		Now:      time.Now(),
	})

	observability.NewPrinter(os.Stdout).PrintScorecard(rep, card)
	return nil
}
