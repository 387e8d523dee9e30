// Package escalation decides when an evidence item warrants the expensive
// multi-agent consensus pipeline instead of the cheap single-pass analysis.
//
// The policy is pure and stateless. Each trigger fires independently; the
// pipeline is escalated only when at least two independent reasons fire,
// and the matched reasons are always returned for audit.
package escalation

import (
	"fmt"
	"strings"

	"github.com/jonathan/civicpulse/internal/types"
)

// MinReasons is the number of independent triggers required to escalate.
const MinReasons = 2

// Quick-pass thresholds.
const (
	lowConfidenceThreshold = 0.6
	extremeImpactThreshold = 7.0
)

// seniorRoleKeywords match against the representative's role, lowercased.
var seniorRoleKeywords = []string{
	"minister",
	"taoiseach",
	"tánaiste",
	"ceann comhairle",
	"leader",
	"whip",
}

// controversialKeywords match against article title and body, lowercased.
var controversialKeywords = []string{
	"scandal",
	"corruption",
	"tribunal",
	"garda investigation",
	"resign",
	"resignation",
	"expenses",
	"misleading the dáil",
	"planning irregularities",
	"brown envelope",
}

// highVisibilitySources are outlets whose coverage alone raises stakes.
var highVisibilitySources = map[string]bool{
	"rte":               true,
	"irish-times":       true,
	"irish-independent": true,
	"the-journal":       true,
}

// QuickAnalysis is the optional cheap single-pass result for an article.
type QuickAnalysis struct {
	Impact     float64 `json:"impact"`     // signed, [-10,+10]
	Confidence float64 `json:"confidence"` // [0,1]
	StoryType  string  `json:"story_type"`
}

// ArticleSignals carries the article fields the policy inspects.
type ArticleSignals struct {
	Title    string
	Body     string
	SourceID string
}

// Decision is the policy output: whether to escalate, and which triggers
// fired.
type Decision struct {
	ShouldEscalate bool     `json:"should_escalate"`
	Reasons        []string `json:"reasons"`
}

// Evaluate applies every trigger to the article and representative.
// quick may be nil when no cheap pass was run; its triggers simply cannot
// fire.
func Evaluate(article ArticleSignals, rep types.Representative, quick *QuickAnalysis) Decision {
	var reasons []string

	if quick != nil {
		if quick.Confidence < lowConfidenceThreshold {
			reasons = append(reasons, fmt.Sprintf("low quick-pass confidence (%.2f)", quick.Confidence))
		}
		if quick.Impact >= extremeImpactThreshold || quick.Impact <= -extremeImpactThreshold {
			reasons = append(reasons, fmt.Sprintf("extreme impact magnitude (%.1f)", quick.Impact))
		}
		if quick.StoryType == types.StoryScandal || quick.StoryType == types.StoryControversy {
			reasons = append(reasons, fmt.Sprintf("story classified as %s", quick.StoryType))
		}
	}

	role := strings.ToLower(rep.Role)
	for _, kw := range seniorRoleKeywords {
		if strings.Contains(role, kw) {
			reasons = append(reasons, fmt.Sprintf("senior role (%s)", kw))
			break
		}
	}

	if rep.PartyLeader {
		reasons = append(reasons, "party leader")
	}

	text := strings.ToLower(article.Title + " " + article.Body)
	for _, kw := range controversialKeywords {
		if strings.Contains(text, kw) {
			reasons = append(reasons, fmt.Sprintf("controversial keyword (%q)", kw))
			break
		}
	}

	if highVisibilitySources[strings.ToLower(article.SourceID)] {
		reasons = append(reasons, fmt.Sprintf("high-visibility source (%s)", article.SourceID))
	}

	return Decision{
		ShouldEscalate: len(reasons) >= MinReasons,
		Reasons:        reasons,
	}
}
