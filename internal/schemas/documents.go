package schemas

import _ "embed"

// Embedded schema documents for every completion-service response shape.
// Agent replies are validated against these before typed decoding; a
// schema-invalid reply is an agent failure, never a crash.

//go:embed documents/agent_score.schema.json
var agentScoreSchema string

//go:embed documents/ideology_analysis.schema.json
var ideologyAnalysisSchema string

//go:embed documents/quick_analysis.schema.json
var quickAnalysisSchema string

// AgentScoreSchema returns the JSON Schema for scoring-agent replies.
func AgentScoreSchema() string { return agentScoreSchema }

// IdeologyAnalysisSchema returns the JSON Schema for ideology-analyst replies.
func IdeologyAnalysisSchema() string { return ideologyAnalysisSchema }

// QuickAnalysisSchema returns the JSON Schema for quick-pass replies.
func QuickAnalysisSchema() string { return quickAnalysisSchema }
