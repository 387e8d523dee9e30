package scoring

import (
	"time"

	"github.com/jonathan/civicpulse/internal/types"
)

// Pillar names, as published.
const (
	PillarNews          = "news"
	PillarParliamentary = "parliamentary"
	PillarPublicTrust   = "public_trust"
	PillarConstituency  = "constituency"
)

// Pillar weights, summing to 1.0. A pillar with no data enters the sum at
// its neutral default; the weights are never renormalized over the pillars
// that happen to have data. Renormalizing would make two representatives'
// scores incomparable depending on which pillars each has.
var pillarWeights = map[string]float64{
	PillarNews:          0.35,
	PillarParliamentary: 0.25,
	PillarPublicTrust:   0.25,
	PillarConstituency:  0.15,
}

// confidenceSaturation is the pillar-source count at which confidence
// reaches 1.
const confidenceSaturation = 4.0

// dimensionNewsShare is the news-derived share of each published dimension
// score; the remainder comes from the parliamentary pillar. Integrity is
// almost entirely a news signal, effectiveness an even blend.
var dimensionNewsShare = map[types.Dimension]float64{
	types.DimensionTransparency:  0.7,
	types.DimensionEffectiveness: 0.5,
	types.DimensionIntegrity:     0.9,
	types.DimensionConsistency:   0.8,
	types.DimensionConstituency:  0.6,
}

// Inputs is everything known about one representative at scoring time.
// Any part may be missing; the corresponding pillar scores neutral.
type Inputs struct {
	Record   *types.RatingRecord
	Evidence []types.EvidenceItem
	Activity *types.ParliamentaryActivity
	Trust    types.TrustTally
	Now      time.Time
}

// Scorecard is the published unified score for one representative.
type Scorecard struct {
	Overall    float64
	Pillars    map[string]float64
	Dimensions map[types.Dimension]float64
	Confidence float64
}

// Unified blends the four pillars into the published scorecard. It always
// returns a score: a representative nothing is known about sits at neutral
// 50 everywhere with confidence 0. Confidence grows with the number of
// pillars that have real data behind them.
func Unified(in Inputs) *Scorecard {
	pillars := map[string]float64{
		PillarNews:          NewsScore(in.Evidence, in.Now),
		PillarParliamentary: ParliamentaryScore(in.Activity),
		PillarPublicTrust:   PublicTrustScore(in.Trust),
		PillarConstituency:  ConstituencyScore(in.Record),
	}

	var overall float64
	for name, score := range pillars {
		overall += score * pillarWeights[name]
	}

	return &Scorecard{
		Overall:    overall,
		Pillars:    pillars,
		Dimensions: dimensionScores(in.Record, pillars[PillarParliamentary]),
		Confidence: confidence(in),
	}
}

// dimensionScores blends each dimension's news-derived rating projection
// with the parliamentary pillar at a fixed per-dimension ratio.
func dimensionScores(record *types.RatingRecord, parliamentary float64) map[types.Dimension]float64 {
	scores := make(map[types.Dimension]float64, len(dimensionNewsShare))
	for d, newsShare := range dimensionNewsShare {
		fromNews := NeutralScore
		if record != nil {
			if s, ok := record.Scores[d]; ok {
				fromNews = s
			}
		}
		scores[d] = clampScore(fromNews*newsShare + parliamentary*(1-newsShare))
	}
	return scores
}

// confidence counts the pillars with real data behind them.
func confidence(in Inputs) float64 {
	sources := 0
	for i := range in.Evidence {
		if in.Evidence[i].Analyzed {
			sources++
			break
		}
	}
	if in.Activity != nil {
		sources++
	}
	if in.Trust.Total() >= minTrustVotes {
		sources++
	}
	if in.Record != nil && in.Record.SourceCount > 0 {
		sources++
	}

	conf := float64(sources) / confidenceSaturation
	if conf > 1 {
		conf = 1
	}
	return conf
}
