package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/civicpulse/internal/aggregate"
	"github.com/jonathan/civicpulse/internal/config"
	"github.com/jonathan/civicpulse/internal/db"
	"github.com/jonathan/civicpulse/internal/escalation"
	"github.com/jonathan/civicpulse/internal/llm"
	"github.com/jonathan/civicpulse/internal/observability"
	"github.com/jonathan/civicpulse/internal/pipeline"
	"github.com/jonathan/civicpulse/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one evidence item and fold it into the ratings",
	Long: `Runs the cheap quick pass, applies the escalation policy, and either
commits the quick result directly or dispatches the full multi-agent
consensus pipeline.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeEvidenceID string
	analyzeAPIKey     string
	analyzeDBURL      string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeEvidenceID, "evidence", "e", "", "Evidence item UUID (required)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	analyzeCmd.Flags().StringVar(&analyzeDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	analyzeCmd.MarkFlagRequired("evidence")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, analyzeConfigPath, analyzeAPIKey, analyzeDBURL, analyzeVerbose)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	evidenceID, err := uuid.Parse(analyzeEvidenceID)
	if err != nil {
		return fmt.Errorf("invalid evidence ID: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	evidence, err := database.GetEvidence(ctx, evidenceID)
	if err != nil {
		return err
	}
	if evidence == nil {
		return fmt.Errorf("evidence %s not found", evidenceID)
	}
	if evidence.Analyzed {
		fmt.Fprintf(os.Stdout, "Evidence %s already analyzed; nothing to do\n", evidenceID)
		return nil
	}

	rep, err := database.GetRepresentative(ctx, evidence.RepresentativeID)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	defer client.Close()

	p := pipeline.New(client, cfg.Verbose)
	printer := observability.NewPrinter(os.Stdout)
	aggregator := aggregate.New(database)

	quick, err := p.QuickPass(ctx, evidence, *rep)
	if err != nil {
		// The escalation policy tolerates a missing quick pass; its
		// triggers simply cannot fire.
		fmt.Fprintf(os.Stdout, "Warning: quick pass failed: %v\n", err)
		quick = nil
	}

	decision := escalation.Evaluate(escalation.ArticleSignals{
		Title:    evidence.Title,
		Body:     evidence.Body,
		SourceID: evidence.SourceID,
	}, *rep, quick)
	if cfg.Verbose {
		printer.PrintEscalation(&decision)
	}

	if !decision.ShouldEscalate {
		if quick == nil {
			return fmt.Errorf("quick pass failed and no escalation triggers fired for evidence %s", evidenceID)
		}
		consensus := quickConsensus(evidence, *rep, quick, time.Now())
		if err := aggregator.Apply(ctx, consensus, evidence, nil); err != nil {
			return fmt.Errorf("failed to apply quick-pass result: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Applied quick-pass impact %+.1f to %s\n", quick.Impact, rep.Name)
		return nil
	}

	storyType := ""
	if quick != nil {
		storyType = quick.StoryType
	}

	result, err := p.Analyze(ctx, evidence, *rep, storyType)
	if err != nil {
		return fmt.Errorf("consensus run failed: %w", err)
	}
	if cfg.Verbose {
		printer.PrintConsensus(result.Consensus, result.Reports)
	}

	if err := aggregator.Apply(ctx, result.Consensus, evidence, result.Ideology); err != nil {
		return fmt.Errorf("failed to apply consensus: %w", err)
	}

	if result.Consensus.ReviewRequired {
		fmt.Fprintf(os.Stdout, "Consensus contested; flagged for human review, published score unchanged\n")
	} else {
		fmt.Fprintf(os.Stdout, "Applied consensus impact %+.1f to %s\n", result.Consensus.Impact, rep.Name)
	}
	return nil
}

// quickConsensus wraps a quick-pass result as a single-source consensus so
// the aggregator applies it through the same path as a full run.
func quickConsensus(evidence *types.EvidenceItem, rep types.Representative, quick *escalation.QuickAnalysis, now time.Time) *types.ConsensusResult {
	return &types.ConsensusResult{
		EvidenceID:       evidence.ID,
		RepresentativeID: rep.ID,
		Impact:           quick.Impact,
		Confidence:       quick.Confidence,
		Level:            types.AgreementUnanimous,
		StoryType:        quick.StoryType,
		CreatedAt:        now,
	}
}

// resolveConfig merges the config file, explicit flags and environment,
// in that order of increasing priority for flags and decreasing for env.
func resolveConfig(cmd *cobra.Command, path, apiKey, dbURL string, verbose bool) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", path)
		}
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = dbURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{})

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	return cfg, nil
}
