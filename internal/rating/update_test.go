package rating

import (
	"testing"

	"github.com/jonathan/civicpulse/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDelta_LiteralTable(t *testing.T) {
	// delta = round(impact * credibility * recency * storyMult / 10 * K)
	cases := []struct {
		name     string
		impact   float64
		cred     float64
		recency  float64
		mult     float64
		k        int
		expected int
	}{
		{"full positive", 10, 1.0, 1.0, 1.0, 32, 32},
		{"full negative", -10, 1.0, 1.0, 1.0, 32, -32},
		{"half credibility", 10, 0.5, 1.0, 1.0, 32, 16},
		{"scandal multiplier", -6, 0.9, 1.0, 1.5, 40, -32},
		{"stale evidence floor", 4, 1.0, 0.3, 1.0, 24, 3},
		{"zero impact", 0, 1.0, 1.0, 1.5, 40, 0},
		{"rounding up", 1, 1.0, 1.0, 1.0, 24, 2}, // 2.4 -> 2
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Delta(tc.impact, tc.cred, tc.recency, tc.mult, tc.k))
		})
	}
}

func TestUpdate_ClampsToBounds(t *testing.T) {
	assert.Equal(t, types.MaxRating, Update(types.MaxRating, 50))
	assert.Equal(t, types.MinRating, Update(types.MinRating, -50))
	assert.Equal(t, 1232, Update(1200, 32))
}

func TestUpdate_ExtremeInputsStayBounded(t *testing.T) {
	// impact=10, credibility=1, recency=1, K=100 is the worst case the
	// primitive must survive.
	d := Delta(10, 1.0, 1.0, 1.5, 100)
	assert.Equal(t, 150, d)

	r := Update(types.MaxRating-10, d)
	assert.GreaterOrEqual(t, r, types.MinRating)
	assert.LessOrEqual(t, r, types.MaxRating)

	r = Update(types.MinRating+10, -d)
	assert.GreaterOrEqual(t, r, types.MinRating)
	assert.LessOrEqual(t, r, types.MaxRating)
}

func TestKFactor_UnknownDimensionFallsBackToOverall(t *testing.T) {
	assert.Equal(t, KFactors[types.DimensionOverall], KFactor(types.Dimension("bogus")))
	assert.Equal(t, 40, KFactor(types.DimensionIntegrity))
}

func TestStoryMultiplier_UnknownTypeIsNeutral(t *testing.T) {
	assert.Equal(t, 1.0, StoryMultiplier("editorial"))
	assert.Equal(t, 1.5, StoryMultiplier(types.StoryScandal))
	assert.Equal(t, 0.5, StoryMultiplier(types.StoryHumanInterest))
}

func TestRecencyWeight_FullWindowAndDecay(t *testing.T) {
	assert.Equal(t, 1.0, RecencyWeight(0))
	assert.Equal(t, 1.0, RecencyWeight(30))

	// One half-life past the full window.
	assert.InDelta(t, 0.5, RecencyWeight(120), 0.001)

	// Decay is monotonic.
	assert.Greater(t, RecencyWeight(45), RecencyWeight(90))
}

func TestRecencyWeight_FloorNeverReachesZero(t *testing.T) {
	assert.Equal(t, 0.3, RecencyWeight(365))
	assert.Equal(t, 0.3, RecencyWeight(10000))
}

func TestProjectRating_BaselineIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, types.ProjectRating(types.BaselineRating))
	assert.Equal(t, 0.0, types.ProjectRating(types.MinRating))
	assert.Equal(t, 100.0, types.ProjectRating(types.MaxRating))
}
