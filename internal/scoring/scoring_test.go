package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/civicpulse/internal/types"
	"github.com/stretchr/testify/assert"
)

func analyzedItem(impact, credibility float64, ageDays int) types.EvidenceItem {
	return types.EvidenceItem{
		ID:            uuid.New(),
		Credibility:   credibility,
		PublishedAt:   time.Now().AddDate(0, 0, -ageDays),
		OverallImpact: impact,
		Analyzed:      true,
	}
}

func TestNewsScore_NoEvidenceIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, NewsScore(nil, time.Now()))
}

func TestNewsScore_UnanalyzedEvidenceIgnored(t *testing.T) {
	item := analyzedItem(8, 0.9, 1)
	item.Analyzed = false

	assert.Equal(t, 50.0, NewsScore([]types.EvidenceItem{item}, time.Now()))
}

func TestNewsScore_ThreeFreshPositives(t *testing.T) {
	items := []types.EvidenceItem{
		analyzedItem(6, 0.9, 1),
		analyzedItem(6, 0.9, 2),
		analyzedItem(6, 0.9, 3),
	}

	assert.InDelta(t, 80.0, NewsScore(items, time.Now()), 0.001)
}

func TestNewsScore_WeightsByCredibility(t *testing.T) {
	items := []types.EvidenceItem{
		analyzedItem(10, 1.0, 1),
		analyzedItem(-10, 0.5, 1),
	}

	// Weighted mean impact (10 - 5) / 1.5 = 3.33 projects to 66.67.
	assert.InDelta(t, 66.67, NewsScore(items, time.Now()), 0.01)
}

func TestNewsScore_StaleEvidenceCountsLess(t *testing.T) {
	fresh := []types.EvidenceItem{analyzedItem(8, 0.9, 1), analyzedItem(-8, 0.9, 200)}

	// The stale negative is down-weighted to the recency floor, so the
	// fresh positive dominates.
	assert.Greater(t, NewsScore(fresh, time.Now()), 50.0)
}

func TestParliamentaryScore_NilActivityIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, ParliamentaryScore(nil))
}

func TestParliamentaryScore_BenchmarksEarnFullMarks(t *testing.T) {
	activity := &types.ParliamentaryActivity{
		AttendancePct:     90,
		QuestionsAsked:    50,
		CommitteeMeetings: 20,
	}

	// 90*0.40 + 100*0.35 + 100*0.25
	assert.InDelta(t, 96.0, ParliamentaryScore(activity), 0.001)
}

func TestParliamentaryScore_RatiosCappedAtBenchmark(t *testing.T) {
	activity := &types.ParliamentaryActivity{
		AttendancePct:     100,
		QuestionsAsked:    500,
		CommitteeMeetings: 80,
	}

	assert.InDelta(t, 100.0, ParliamentaryScore(activity), 0.001)
}

func TestParliamentaryScore_MissingMetricIsNeutralNotZero(t *testing.T) {
	activity := &types.ParliamentaryActivity{
		AttendancePct:     -1, // never recorded
		QuestionsAsked:    25,
		CommitteeMeetings: 10,
	}

	// 50*0.40 + 50*0.35 + 50*0.25
	assert.InDelta(t, 50.0, ParliamentaryScore(activity), 0.001)
}

func TestPublicTrustScore_SmallSamplePinnedAtNeutral(t *testing.T) {
	assert.Equal(t, 50.0, PublicTrustScore(types.TrustTally{Trust: 9, Distrust: 0}))
}

func TestPublicTrustScore_DampedBelowFactor(t *testing.T) {
	// 12 votes: denominator is the damping floor 25, not 12.
	score := PublicTrustScore(types.TrustTally{Trust: 10, Distrust: 2})
	assert.InDelta(t, 66.0, score, 0.001)
}

func TestPublicTrustScore_LargeSample(t *testing.T) {
	score := PublicTrustScore(types.TrustTally{Trust: 75, Distrust: 25})
	assert.InDelta(t, 75.0, score, 0.001)
}

func TestPublicTrustScore_MoreTrustNeverLowersScore(t *testing.T) {
	prev := 0.0
	for trust := 0; trust <= 100; trust += 5 {
		score := PublicTrustScore(types.TrustTally{Trust: trust, Distrust: 20})
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestConstituencyScore_UnmeasuredIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, ConstituencyScore(nil))
	assert.Equal(t, 50.0, ConstituencyScore(types.NewRatingRecord(uuid.New())))
}

func TestConstituencyScore_MeasuredUsesRating(t *testing.T) {
	record := types.NewRatingRecord(uuid.New())
	record.SourceCount = 2
	record.Ratings[types.DimensionConstituency] = 1360
	record.Scores[types.DimensionConstituency] = types.ProjectRating(1360)

	assert.InDelta(t, 60.0, ConstituencyScore(record), 0.001)
}
