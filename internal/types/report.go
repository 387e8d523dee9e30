package types

// AgentKind distinguishes the roles in the agent catalog.
type AgentKind string

const (
	AgentKindAnchor      AgentKind = "anchor"
	AgentKindPerspective AgentKind = "perspective"
	AgentKindSpecialist  AgentKind = "specialist"
	AgentKindIdeology    AgentKind = "ideology"
)

// ReportStatus records whether an agent call produced a usable score.
type ReportStatus string

const (
	ReportOK     ReportStatus = "ok"
	ReportFailed ReportStatus = "failed"
)

// AgentReport is one agent's opinion on one (evidence, representative)
// pair. Reports are ephemeral: they live only for the duration of a single
// pipeline run and feed the arbitrator.
type AgentReport struct {
	Agent      string                `json:"agent"`
	Kind       AgentKind             `json:"kind"`
	Anchor     bool                  `json:"anchor"`
	Scores     map[Dimension]float64 `json:"scores,omitempty"` // 0-100, absent if unscored
	Impact     float64               `json:"impact"`           // signed, [-10,+10]
	Confidence float64               `json:"confidence"`       // [0,1]
	Bias       string                `json:"bias,omitempty"`
	Rationale  string                `json:"rationale,omitempty"`
	Status     ReportStatus          `json:"status"`
}

// Usable reports whether the report contributes to arbitration.
func (r *AgentReport) Usable() bool {
	return r.Status == ReportOK
}
