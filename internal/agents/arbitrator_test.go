package agents

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/civicpulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(agent string, anchor bool, impact, confidence float64) types.AgentReport {
	return types.AgentReport{
		Agent:      agent,
		Anchor:     anchor,
		Impact:     impact,
		Confidence: confidence,
		Scores:     map[types.Dimension]float64{types.DimensionIntegrity: 50 + impact*5},
		Status:     types.ReportOK,
	}
}

func arbitrate(t *testing.T, reports []types.AgentReport) *types.ConsensusResult {
	t.Helper()
	result, err := Arbitrate(uuid.New(), uuid.New(), reports, types.StoryPolicy, time.Now())
	require.NoError(t, err)
	return result
}

func TestArbitrate_CloseAgreementAverages(t *testing.T) {
	// Impacts -1, 0, +1 project to 45, 50, 55: spread 10 < 15.
	reports := []types.AgentReport{
		report(AgentNeutralAnalyst, true, -1, 0.8),
		report(AgentSkepticalAuditor, true, 0, 0.8),
		report(AgentOppositionView, false, 1, 0.8),
	}

	result := arbitrate(t, reports)

	assert.Equal(t, types.AgreementUnanimous, result.Level)
	assert.False(t, result.ReviewRequired)
	assert.InDelta(t, 0.0, result.Impact, 0.001) // plain mean
	assert.InDelta(t, 0.8, result.Confidence, 0.001)
	assert.Empty(t, result.Disagreements)
}

func TestArbitrate_ModerateDisagreementWeightsAnchors(t *testing.T) {
	// Impacts -2, -2, +2 project to 40, 40, 60: spread 20 in [15,30].
	reports := []types.AgentReport{
		report(AgentNeutralAnalyst, true, -2, 0.8),
		report(AgentSkepticalAuditor, true, -2, 0.8),
		report(AgentOppositionView, false, 2, 0.8),
	}

	result := arbitrate(t, reports)

	assert.Equal(t, types.AgreementSplit, result.Level)
	assert.False(t, result.ReviewRequired)
	// Anchor weight 2: (-2*2 + -2*2 + 2*1) / 5 = -1.2
	assert.InDelta(t, -1.2, result.Impact, 0.001)
	assert.NotEmpty(t, result.Disagreements)
}

func TestArbitrate_LargeDisagreementFlagsForReview(t *testing.T) {
	// Impacts -5 and +5 project to 25 and 75: spread 50 > 30.
	reports := []types.AgentReport{
		report(AgentNeutralAnalyst, true, -5, 0.9),
		report(AgentOppositionView, false, 5, 0.9),
	}

	result := arbitrate(t, reports)

	assert.Equal(t, types.AgreementContested, result.Level)
	assert.True(t, result.ReviewRequired)
	// Still persisted at low confidence, never silently tie-broken.
	assert.InDelta(t, 0.45, result.Confidence, 0.001)
	assert.Len(t, result.Disagreements, 2)
}

func TestArbitrate_FailedReportsContributeNothing(t *testing.T) {
	reports := []types.AgentReport{
		report(AgentNeutralAnalyst, true, 2, 0.8),
		{Agent: AgentOppositionView, Status: types.ReportFailed},
		report(AgentSkepticalAuditor, true, 2, 0.8),
	}

	result := arbitrate(t, reports)

	assert.Equal(t, types.AgreementUnanimous, result.Level)
	assert.InDelta(t, 2.0, result.Impact, 0.001)
}

func TestArbitrate_AllFailedIsRunFailure(t *testing.T) {
	reports := []types.AgentReport{
		{Agent: AgentNeutralAnalyst, Status: types.ReportFailed},
		{Agent: AgentSkepticalAuditor, Status: types.ReportFailed},
	}

	_, err := Arbitrate(uuid.New(), uuid.New(), reports, types.StoryPolicy, time.Now())
	assert.Error(t, err)
}

func TestArbitrate_CommutativeOverReportOrder(t *testing.T) {
	reports := []types.AgentReport{
		report(AgentNeutralAnalyst, true, -3, 0.7),
		report(AgentSkepticalAuditor, true, -1, 0.9),
		report(AgentOppositionView, false, 2, 0.6),
		report(AgentIntegritySpec, false, 1, 0.8),
	}

	baseline := arbitrate(t, reports)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]types.AgentReport, len(reports))
		copy(shuffled, reports)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		result := arbitrate(t, shuffled)
		assert.Equal(t, baseline.Level, result.Level)
		assert.InDelta(t, baseline.Impact, result.Impact, 1e-9)
		assert.InDelta(t, baseline.Confidence, result.Confidence, 1e-9)
		assert.Equal(t, baseline.Disagreements, result.Disagreements)
	}
}

func TestArbitrate_DimensionScoresAverageOnlyScoredReports(t *testing.T) {
	a := report(AgentNeutralAnalyst, true, 0, 0.8)
	a.Scores = map[types.Dimension]float64{types.DimensionIntegrity: 40}
	b := report(AgentSkepticalAuditor, true, 0, 0.8)
	b.Scores = map[types.Dimension]float64{
		types.DimensionIntegrity:    60,
		types.DimensionTransparency: 30,
	}

	result := arbitrate(t, []types.AgentReport{a, b})

	assert.InDelta(t, 50.0, result.Scores[types.DimensionIntegrity], 0.001)
	// Transparency scored by one agent only.
	assert.InDelta(t, 30.0, result.Scores[types.DimensionTransparency], 0.001)
}
