package agents

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/civicpulse/internal/types"
)

// Disagreement tiers, in impact points (an agent's signed impact projected
// to the 0-100 scale as 50 + impact*5).
const (
	spreadAverageBelow = 15.0
	spreadAnchorBelow  = 30.0
)

// anchorWeight is the arbitration weight of anchor agents when agents are
// split; non-anchors weigh 1.
const anchorWeight = 2.0

// Confidence factors applied to the mean agent confidence per agreement
// level. A contested run is still persisted but published at low
// confidence, never silently tie-broken.
var agreementConfidenceFactor = map[types.AgreementLevel]float64{
	types.AgreementUnanimous: 1.0,
	types.AgreementSplit:     0.85,
	types.AgreementContested: 0.5,
}

// Arbitrate synthesizes the completed agent reports for one evidence item.
// It is a pure function and commutative over report order: shuffling the
// reports cannot change the result. Failed reports contribute nothing.
// With zero usable reports the whole run has failed and an error is
// returned.
func Arbitrate(evidenceID, repID uuid.UUID, reports []types.AgentReport, storyType string, now time.Time) (*types.ConsensusResult, error) {
	var usable []types.AgentReport
	for _, r := range reports {
		if r.Usable() {
			usable = append(usable, r)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("no usable agent reports for evidence %s", evidenceID)
	}

	spread := impactSpread(usable)

	level := types.AgreementUnanimous
	switch {
	case spread > spreadAnchorBelow:
		level = types.AgreementContested
	case spread >= spreadAverageBelow:
		level = types.AgreementSplit
	}

	weight := func(r types.AgentReport) float64 { return 1.0 }
	if level != types.AgreementUnanimous {
		// Split or contested: weight toward the anchors.
		weight = func(r types.AgentReport) float64 {
			if r.Anchor {
				return anchorWeight
			}
			return 1.0
		}
	}

	result := &types.ConsensusResult{
		EvidenceID:       evidenceID,
		RepresentativeID: repID,
		Scores:           weightedScores(usable, weight),
		Impact:           weightedImpact(usable, weight),
		Confidence:       consensusConfidence(usable, level),
		Spread:           spread,
		Level:            level,
		ReviewRequired:   level == types.AgreementContested,
		StoryType:        storyType,
		CreatedAt:        now,
	}

	if level != types.AgreementUnanimous {
		result.Disagreements = describeDisagreements(usable)
	}

	return result, nil
}

// impactSpread is the widest gap between any two agents' impacts, in
// points.
func impactSpread(reports []types.AgentReport) float64 {
	lo, hi := impactPoints(reports[0]), impactPoints(reports[0])
	for _, r := range reports[1:] {
		p := impactPoints(r)
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return hi - lo
}

func impactPoints(r types.AgentReport) float64 {
	return 50 + r.Impact*5
}

func weightedImpact(reports []types.AgentReport, weight func(types.AgentReport) float64) float64 {
	var sum, wsum float64
	for _, r := range reports {
		w := weight(r)
		sum += r.Impact * w
		wsum += w
	}
	return sum / wsum
}

// weightedScores averages each dimension over the reports that scored it.
func weightedScores(reports []types.AgentReport, weight func(types.AgentReport) float64) map[types.Dimension]float64 {
	sums := make(map[types.Dimension]float64)
	weights := make(map[types.Dimension]float64)
	for _, r := range reports {
		w := weight(r)
		for d, v := range r.Scores {
			sums[d] += v * w
			weights[d] += w
		}
	}

	scores := make(map[types.Dimension]float64, len(sums))
	for d, s := range sums {
		scores[d] = s / weights[d]
	}
	return scores
}

func consensusConfidence(reports []types.AgentReport, level types.AgreementLevel) float64 {
	var sum float64
	for _, r := range reports {
		sum += r.Confidence
	}
	conf := sum / float64(len(reports)) * agreementConfidenceFactor[level]
	if conf > 1 {
		conf = 1
	}
	return conf
}

// describeDisagreements names the extremes, sorted by agent name so the
// output is independent of report order.
func describeDisagreements(reports []types.AgentReport) []string {
	sorted := make([]types.AgentReport, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Agent < sorted[j].Agent })

	var lo, hi types.AgentReport
	lo, hi = sorted[0], sorted[0]
	for _, r := range sorted[1:] {
		if r.Impact < lo.Impact {
			lo = r
		}
		if r.Impact > hi.Impact {
			hi = r
		}
	}

	return []string{
		fmt.Sprintf("%s read the article most negatively (impact %.1f)", lo.Agent, lo.Impact),
		fmt.Sprintf("%s read the article most positively (impact %.1f)", hi.Agent, hi.Impact),
	}
}
