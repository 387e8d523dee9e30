package agents

import (
	"strings"

	"github.com/jonathan/civicpulse/internal/types"
)

// Signals carries the article features the manager's selection table keys
// on. It is deliberately small so selection stays a pure, testable
// function with no completion-service involvement.
type Signals struct {
	StoryType string
	Title     string
	Body      string
}

// Selection keyword tables.
var (
	managerSeniorRoles = []string{"minister", "taoiseach", "tánaiste", "leader", "ceann comhairle"}

	integritySignals = []string{
		"scandal", "corruption", "expenses", "tribunal", "ethics",
		"conflict of interest", "donation", "lobbying",
	}
	constituencySignals = []string{
		"constituency", "local", "clinic", "community", "council",
	}
	effectivenessSignals = []string{
		"bill", "legislation", "committee", "amendment", "oireachtas", "dáil",
	}
)

// Select returns the scoring agents for one pipeline run. The two anchor
// agents are force-included regardless of what the table selects; that is
// a hard invariant guarding against degenerate selection. The result is
// capped at MaxScoringAgents, evicting table picks in reverse selection
// order, never anchors.
func Select(rep types.Representative, sig Signals) []Spec {
	idx := specIndex()
	selected := []Spec{idx[AgentNeutralAnalyst], idx[AgentSkepticalAuditor]}

	text := strings.ToLower(sig.Title + " " + sig.Body)
	add := func(name string) {
		for _, s := range selected {
			if s.Name == name {
				return
			}
		}
		selected = append(selected, idx[name])
	}

	if sig.StoryType == types.StoryScandal || sig.StoryType == types.StoryControversy || containsAny(text, integritySignals) {
		add(AgentIntegritySpec)
		add(AgentTransparencySpec)
	}

	if rep.PartyLeader || containsAny(strings.ToLower(rep.Role), managerSeniorRoles) {
		add(AgentGovernmentView)
		add(AgentOppositionView)
	}

	if containsAny(text, constituencySignals) {
		add(AgentConstituentView)
	}

	if containsAny(text, effectivenessSignals) {
		add(AgentEffectivenessSpec)
	}

	if len(selected) > MaxScoringAgents {
		selected = selected[:MaxScoringAgents]
	}

	return selected
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
