package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/civicpulse/internal/escalation"
	"github.com/jonathan/civicpulse/internal/llm"
	"github.com/jonathan/civicpulse/internal/schemas"
	"github.com/jonathan/civicpulse/internal/types"
)

// Runner executes agents against the completion service. Each call is an
// isolated request/response; a failed or schema-invalid reply is recorded
// as a failed report and never aborts the run.
type Runner struct {
	client llm.Client
}

// NewRunner creates a Runner over the given completion client.
func NewRunner(client llm.Client) *Runner {
	return &Runner{client: client}
}

// agentScorePayload is the wire shape of a scoring-agent reply.
type agentScorePayload struct {
	Scores     map[string]float64 `json:"scores"`
	Impact     float64            `json:"impact"`
	Confidence float64            `json:"confidence"`
	Bias       string             `json:"bias"`
	Rationale  string             `json:"rationale"`
}

// RunAgent invokes one scoring agent for an (evidence, representative)
// pair. It always returns a report: on any failure the report carries
// Status=failed and contributes nothing to arbitration.
func (r *Runner) RunAgent(ctx context.Context, spec Spec, article *types.EvidenceItem, rep types.Representative) types.AgentReport {
	report := types.AgentReport{
		Agent:  spec.Name,
		Kind:   spec.Kind,
		Anchor: spec.Anchor,
		Status: types.ReportFailed,
	}

	raw, err := r.client.GenerateJSON(ctx, BuildAgentPrompt(spec, article, rep), llm.TierAgent)
	if err != nil {
		return report
	}

	if err := schemas.ValidateJSONString(schemas.AgentScoreSchema(), raw); err != nil {
		return report
	}

	var payload agentScorePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return report
	}

	scores := make(map[types.Dimension]float64, len(payload.Scores))
	for name, v := range payload.Scores {
		d := types.Dimension(name)
		if d.Valid() {
			scores[d] = v
		}
	}

	report.Scores = scores
	report.Impact = payload.Impact
	report.Confidence = payload.Confidence
	report.Bias = payload.Bias
	report.Rationale = payload.Rationale
	report.Status = types.ReportOK
	return report
}

// ideologyPayload is the wire shape of the ideology analyst's reply.
type ideologyPayload struct {
	Deltas     []float64 `json:"deltas"`
	Stance     string    `json:"stance"`
	Confidence float64   `json:"confidence"`
}

// RunIdeology invokes the ideology analyst. Failures return an error; the
// pipeline treats that as a null contribution, not a run failure.
func (r *Runner) RunIdeology(ctx context.Context, article *types.EvidenceItem, rep types.Representative) (*types.IdeologyAnalysis, error) {
	raw, err := r.client.GenerateJSON(ctx, BuildIdeologyPrompt(article, rep), llm.TierDeep)
	if err != nil {
		return nil, fmt.Errorf("ideology analyst call failed: %w", err)
	}

	if err := schemas.ValidateJSONString(schemas.IdeologyAnalysisSchema(), raw); err != nil {
		return nil, fmt.Errorf("ideology analyst reply rejected: %w", err)
	}

	var payload ideologyPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("ideology analyst reply not decodable: %w", err)
	}

	analysis := &types.IdeologyAnalysis{
		Stance:     payload.Stance,
		Confidence: payload.Confidence,
	}
	for i := 0; i < types.IdeologyAxisCount && i < len(payload.Deltas); i++ {
		analysis.Deltas[i] = types.ClampAxis(payload.Deltas[i])
	}
	return analysis, nil
}

// QuickPass runs the cheap single-pass analysis used by the escalation
// policy. A nil result with an error means the policy simply has no quick
// signal to key on.
func (r *Runner) QuickPass(ctx context.Context, article *types.EvidenceItem, rep types.Representative) (*escalation.QuickAnalysis, error) {
	raw, err := r.client.GenerateJSON(ctx, BuildQuickPrompt(article, rep), llm.TierQuick)
	if err != nil {
		return nil, fmt.Errorf("quick pass call failed: %w", err)
	}

	if err := schemas.ValidateJSONString(schemas.QuickAnalysisSchema(), raw); err != nil {
		return nil, fmt.Errorf("quick pass reply rejected: %w", err)
	}

	var quick escalation.QuickAnalysis
	if err := json.Unmarshal([]byte(raw), &quick); err != nil {
		return nil, fmt.Errorf("quick pass reply not decodable: %w", err)
	}
	return &quick, nil
}
