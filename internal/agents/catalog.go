// Package agents implements the multi-agent consensus machinery: the fixed
// agent catalog, the manager's selection table, prompt construction, the
// runner that executes agents against the completion service, and the
// arbitrator that synthesizes their reports.
package agents

import "github.com/jonathan/civicpulse/internal/types"

// Agent names in the fixed catalog.
const (
	AgentNeutralAnalyst    = "neutral-analyst"
	AgentSkepticalAuditor  = "skeptical-auditor"
	AgentGovernmentView    = "government-perspective"
	AgentOppositionView    = "opposition-perspective"
	AgentConstituentView   = "constituent-perspective"
	AgentIntegritySpec     = "integrity-specialist"
	AgentTransparencySpec  = "transparency-specialist"
	AgentEffectivenessSpec = "effectiveness-specialist"
	AgentIdeologyAnalyst   = "ideology-analyst"
)

// MaxScoringAgents caps a single pipeline run. Anchors are never evicted.
const MaxScoringAgents = 6

// Spec describes one agent in the catalog.
type Spec struct {
	Name   string
	Kind   types.AgentKind
	Anchor bool
	// Focus is the perspective framing injected into the agent prompt.
	Focus string
}

// Catalog returns the fixed scoring-agent catalog. The ideology analyst is
// not listed here: it never contributes to score arbitration.
func Catalog() []Spec {
	return []Spec{
		{
			Name:   AgentNeutralAnalyst,
			Kind:   types.AgentKindAnchor,
			Anchor: true,
			Focus:  "You are a neutral political analyst. Weigh the evidence exactly as reported, with no partisan lean.",
		},
		{
			Name:   AgentSkepticalAuditor,
			Kind:   types.AgentKindAnchor,
			Anchor: true,
			Focus:  "You are a skeptical auditor. Look for what the article does not say, unverified claims, and spin.",
		},
		{
			Name:  AgentGovernmentView,
			Kind:  types.AgentKindPerspective,
			Focus: "You read the article from the government benches: give fair weight to the constraints of office and collective responsibility.",
		},
		{
			Name:  AgentOppositionView,
			Kind:  types.AgentKindPerspective,
			Focus: "You read the article from the opposition benches: scrutinise the representative's record and hold power to account.",
		},
		{
			Name:  AgentConstituentView,
			Kind:  types.AgentKindPerspective,
			Focus: "You read the article as an ordinary constituent: what matters is delivery on local issues and accessibility.",
		},
		{
			Name:  AgentIntegritySpec,
			Kind:  types.AgentKindSpecialist,
			Focus: "You are an integrity specialist. Focus on ethics, conflicts of interest, expenses and standards in public office.",
		},
		{
			Name:  AgentTransparencySpec,
			Kind:  types.AgentKindSpecialist,
			Focus: "You are a transparency specialist. Focus on disclosure, openness with the press, and answering questions directly.",
		},
		{
			Name:  AgentEffectivenessSpec,
			Kind:  types.AgentKindSpecialist,
			Focus: "You are an effectiveness specialist. Focus on legislative output, committee work and whether initiatives actually land.",
		},
	}
}

// specIndex is the catalog keyed by name.
func specIndex() map[string]Spec {
	idx := make(map[string]Spec)
	for _, s := range Catalog() {
		idx[s.Name] = s
	}
	return idx
}
