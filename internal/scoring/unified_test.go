package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/civicpulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_NothingKnownIsNeutralZeroConfidence(t *testing.T) {
	card := Unified(Inputs{Now: time.Now()})

	assert.InDelta(t, 50.0, card.Overall, 0.001)
	assert.Equal(t, 0.0, card.Confidence)
	for name, score := range card.Pillars {
		assert.InDelta(t, 50.0, score, 0.001, "pillar %s", name)
	}
	for d, score := range card.Dimensions {
		assert.InDelta(t, 50.0, score, 0.001, "dimension %s", d)
	}
}

func TestUnified_NewsOnlyScenario(t *testing.T) {
	// Three fresh positive articles and nothing else: news pillar 80,
	// every other pillar at its neutral default, weighted sum 60.5,
	// confidence one quarter.
	in := Inputs{
		Evidence: []types.EvidenceItem{
			analyzedItem(6, 0.9, 1),
			analyzedItem(6, 0.9, 2),
			analyzedItem(6, 0.9, 3),
		},
		Now: time.Now(),
	}

	card := Unified(in)

	assert.InDelta(t, 80.0, card.Pillars[PillarNews], 0.001)
	assert.InDelta(t, 60.5, card.Overall, 0.001)
	assert.InDelta(t, 0.25, card.Confidence, 0.001)
}

func TestUnified_NeutralDefaultsAlwaysInTheSum(t *testing.T) {
	// A representative with only a strong trust tally: the other pillars
	// stay in the sum at 50 rather than the weights renormalizing over
	// the one available pillar.
	in := Inputs{
		Trust: types.TrustTally{Trust: 90, Distrust: 10},
		Now:   time.Now(),
	}

	card := Unified(in)

	// 50*0.35 + 50*0.25 + 90*0.25 + 50*0.15
	assert.InDelta(t, 90.0, card.Pillars[PillarPublicTrust], 0.001)
	assert.InDelta(t, 60.0, card.Overall, 0.001)
	assert.InDelta(t, 0.25, card.Confidence, 0.001)
}

func TestUnified_AllPillarsPresent(t *testing.T) {
	record := types.NewRatingRecord(uuid.New())
	record.SourceCount = 4
	in := Inputs{
		Record:   record,
		Evidence: []types.EvidenceItem{analyzedItem(4, 1.0, 1)},
		Activity: &types.ParliamentaryActivity{AttendancePct: 90, QuestionsAsked: 50, CommitteeMeetings: 20},
		Trust:    types.TrustTally{Trust: 75, Distrust: 25},
		Now:      time.Now(),
	}

	card := Unified(in)

	// 70*0.35 + 96*0.25 + 75*0.25 + 50*0.15
	assert.InDelta(t, 74.75, card.Overall, 0.001)
	assert.InDelta(t, 1.0, card.Confidence, 0.001)
}

func TestUnified_DimensionBlendRatios(t *testing.T) {
	record := types.NewRatingRecord(uuid.New())
	record.SourceCount = 1
	record.Scores[types.DimensionIntegrity] = 40
	record.Scores[types.DimensionEffectiveness] = 40

	in := Inputs{
		Record:   record,
		Activity: &types.ParliamentaryActivity{AttendancePct: 100, QuestionsAsked: 50, CommitteeMeetings: 20},
		Now:      time.Now(),
	}

	card := Unified(in)
	require.InDelta(t, 100.0, card.Pillars[PillarParliamentary], 0.001)

	// Integrity is 90% news-derived, effectiveness an even blend.
	assert.InDelta(t, 46.0, card.Dimensions[types.DimensionIntegrity], 0.001)
	assert.InDelta(t, 70.0, card.Dimensions[types.DimensionEffectiveness], 0.001)
}

func TestUnified_OverallStaysInBounds(t *testing.T) {
	in := Inputs{
		Evidence: []types.EvidenceItem{analyzedItem(10, 1.0, 1)},
		Activity: &types.ParliamentaryActivity{AttendancePct: 100, QuestionsAsked: 500, CommitteeMeetings: 100},
		Trust:    types.TrustTally{Trust: 1000},
		Now:      time.Now(),
	}

	card := Unified(in)

	assert.LessOrEqual(t, card.Overall, 100.0)
	assert.GreaterOrEqual(t, card.Overall, 0.0)
}
