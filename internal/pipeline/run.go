// Package pipeline orchestrates one multi-agent consensus run for a single
// (evidence item, representative) pair.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/civicpulse/internal/agents"
	"github.com/jonathan/civicpulse/internal/escalation"
	"github.com/jonathan/civicpulse/internal/llm"
	"github.com/jonathan/civicpulse/internal/types"
)

// State is the lifecycle of one pipeline run.
type State string

const (
	StateDispatched    State = "dispatched"
	StateAgentsRunning State = "agents_running"
	StateArbitrating   State = "arbitrating"
	StateConsensus     State = "consensus"
	StateFailed        State = "failed"
)

// Result holds everything produced by one run. Reports are ephemeral and
// kept only for observability; the consensus is what gets persisted.
type Result struct {
	State     State
	Selected  []agents.Spec
	Reports   []types.AgentReport
	Ideology  *types.IdeologyAnalysis
	Consensus *types.ConsensusResult
}

// Pipeline runs the manager -> agents -> arbitrator sequence.
type Pipeline struct {
	runner  *agents.Runner
	verbose bool
	now     func() time.Time
}

// New creates a Pipeline over the given completion client.
func New(client llm.Client, verbose bool) *Pipeline {
	return &Pipeline{
		runner:  agents.NewRunner(client),
		verbose: verbose,
		now:     time.Now,
	}
}

// QuickPass runs the cheap single-pass analysis for the escalation policy.
func (p *Pipeline) QuickPass(ctx context.Context, article *types.EvidenceItem, rep types.Representative) (*escalation.QuickAnalysis, error) {
	return p.runner.QuickPass(ctx, article, rep)
}

// Analyze executes one full consensus run. storyType may come from the
// quick pass and may be empty. Individual agent failures degrade
// gracefully; only a selection or arbitration failure marks the run
// Failed, and a failed run commits nothing (the caller retries it on the
// next scheduled cycle).
func (p *Pipeline) Analyze(ctx context.Context, article *types.EvidenceItem, rep types.Representative, storyType string) (*Result, error) {
	result := &Result{State: StateDispatched}

	selected := agents.Select(rep, agents.Signals{
		StoryType: storyType,
		Title:     article.Title,
		Body:      article.Body,
	})
	if len(selected) == 0 {
		result.State = StateFailed
		return result, fmt.Errorf("agent selection returned no agents for evidence %s", article.ID)
	}
	result.Selected = selected

	if p.verbose {
		fmt.Printf("Dispatching %d agents for %q\n", len(selected), article.Title)
	}

	// Fan out: every agent gets an isolated slot, so there is no shared
	// mutable state between concurrent calls.
	result.State = StateAgentsRunning
	reports := make([]types.AgentReport, len(selected))

	g, gCtx := errgroup.WithContext(ctx)
	for i, spec := range selected {
		i, spec := i, spec
		g.Go(func() error {
			reports[i] = p.runner.RunAgent(gCtx, spec, article, rep)
			return nil
		})
	}

	// The ideology analyst runs concurrently with the scoring agents and
	// never blocks consensus: its failure is a null contribution.
	var ideology *types.IdeologyAnalysis
	g.Go(func() error {
		analysis, err := p.runner.RunIdeology(gCtx, article, rep)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
			return nil
		}
		ideology = analysis
		return nil
	})

	if err := g.Wait(); err != nil {
		result.State = StateFailed
		return result, fmt.Errorf("agent fan-out failed: %w", err)
	}
	result.Reports = reports
	result.Ideology = ideology

	result.State = StateArbitrating
	consensus, err := agents.Arbitrate(article.ID, rep.ID, reports, storyType, p.now())
	if err != nil {
		result.State = StateFailed
		return result, fmt.Errorf("arbitration failed: %w", err)
	}

	result.Consensus = consensus
	result.State = StateConsensus

	if p.verbose {
		ok := 0
		for _, r := range reports {
			if r.Usable() {
				ok++
			}
		}
		fmt.Printf("Consensus reached: impact %.1f, %d/%d agents, agreement %s\n",
			consensus.Impact, ok, len(reports), consensus.Level)
	}

	return result, nil
}
