// Package scoring computes the published pillar scores and blends them
// into the unified 0-100 scorecard.
package scoring

import (
	"time"

	"github.com/jonathan/civicpulse/internal/rating"
	"github.com/jonathan/civicpulse/internal/types"
)

// NeutralScore is the published score of a representative nothing is known
// about. Every pillar defaults to it.
const NeutralScore = 50.0

// NewsScore computes the news pillar: a credibility-and-recency weighted
// mean of the signed overall impacts of analyzed evidence, projected onto
// the 0-100 scale. Unanalyzed items contribute nothing. With zero analyzed
// evidence the pillar is neutral.
func NewsScore(items []types.EvidenceItem, now time.Time) float64 {
	var sum, wsum float64
	for i := range items {
		e := &items[i]
		if !e.Analyzed {
			continue
		}
		w := rating.RecencyWeight(e.AgeDays(now)) * e.Credibility
		if w <= 0 {
			continue
		}
		sum += e.OverallImpact * w
		wsum += w
	}
	if wsum == 0 {
		return NeutralScore
	}
	return clampScore(50 + sum/wsum*5)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
