// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/civicpulse/internal/batch"
	"github.com/jonathan/civicpulse/internal/escalation"
	"github.com/jonathan/civicpulse/internal/scoring"
	"github.com/jonathan/civicpulse/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEscalation outputs the escalation decision with its audit trail.
func (p *Printer) PrintEscalation(decision *escalation.Decision) {
	if decision == nil {
		return
	}

	var sb strings.Builder
	if decision.ShouldEscalate {
		sb.WriteString("Decision: ESCALATE to full consensus run\n")
	} else {
		sb.WriteString("Decision: quick pass is sufficient\n")
	}

	if len(decision.Reasons) > 0 {
		sb.WriteString("\nTriggers:\n")
		count := min(len(decision.Reasons), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", decision.Reasons[i]))
		}
		if len(decision.Reasons) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(decision.Reasons)-maxItemsToShow))
		}
	}

	p.printBox("ESCALATION DECISION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConsensus outputs the arbitrated result with per-agent impacts.
func (p *Printer) PrintConsensus(consensus *types.ConsensusResult, reports []types.AgentReport) {
	if consensus == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Impact:     %+.1f\n", consensus.Impact))
	sb.WriteString(fmt.Sprintf("Agreement:  %s (spread %.1f)\n", consensus.Level, consensus.Spread))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", consensus.Confidence))
	if consensus.ReviewRequired {
		sb.WriteString("⚠ Flagged for human review\n")
	}

	if len(reports) > 0 {
		sb.WriteString("\nAgents:\n")
		count := min(len(reports), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := reports[i]
			if r.Status == types.ReportFailed {
				sb.WriteString(fmt.Sprintf("  ✗ %s (failed)\n", r.Agent))
				continue
			}
			sb.WriteString(fmt.Sprintf("  • %s: %+.1f\n", r.Agent, r.Impact))
		}
		if len(reports) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reports)-maxItemsToShow))
		}
	}

	if len(consensus.Disagreements) > 0 {
		sb.WriteString("\nDisagreements:\n")
		for _, d := range consensus.Disagreements {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", d))
		}
	}

	p.printBox("CONSENSUS RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScorecard outputs the unified scorecard for one representative.
func (p *Printer) PrintScorecard(rep *types.Representative, card *scoring.Scorecard) {
	if card == nil {
		return
	}

	var sb strings.Builder
	if rep != nil {
		sb.WriteString(fmt.Sprintf("%s (%s, %s)\n\n", rep.Name, rep.Party, rep.Constituency))
	}
	sb.WriteString(fmt.Sprintf("Overall:    %.1f\n", card.Overall))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", card.Confidence))

	if len(card.Pillars) > 0 {
		sb.WriteString("\nPillars:\n")
		names := make([]string, 0, len(card.Pillars))
		for name := range card.Pillars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %-14s %.1f\n", name, card.Pillars[name]))
		}
	}

	p.printBox("UNIFIED SCORECARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the recalculation run summary.
func (p *Printer) PrintBatchSummary(summary *batch.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed: %d\n", summary.Processed))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("Duration:  %s\n", summary.Duration.Round(time.Millisecond)))

	if len(summary.Failures) > 0 {
		sb.WriteString("\nFailures:\n")
		count := min(len(summary.Failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			failure := summary.Failures[i]
			if len(failure) > 45 {
				failure = failure[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", failure))
		}
		if len(summary.Failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.Failures)-maxItemsToShow))
		}
	}

	p.printBox("RECALCULATION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
