package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/civicpulse/internal/db"
	"github.com/jonathan/civicpulse/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a news export file into the evidence store",
	Long: `Reads a JSON array of articles and stores each as unanalyzed evidence
for its representative. Evidence IDs are derived from article content, so
re-running an import does not create duplicates.`,
	RunE: runIngest,
}

var (
	ingestConfigPath string
	ingestFile       string
	ingestDBURL      string
	ingestVerbose    bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to the articles JSON export (required)")
	ingestCmd.Flags().StringVar(&ingestDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed progress information")
	ingestCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, ingestConfigPath, "", ingestDBURL, ingestVerbose)
	if err != nil {
		return err
	}

	articles, err := ingestion.LoadFile(ingestFile)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	summary, err := ingestion.New(database).Run(ctx, articles)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %d articles (%d skipped)\n", summary.Stored, summary.Skipped)
	return nil
}
