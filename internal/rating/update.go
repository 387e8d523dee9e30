// Package rating implements the ELO-style rating update primitive.
//
// The primitive is pure and deterministic: a signed impact, weighted by
// credibility, recency and story type, is converted into a bounded rating
// delta via a per-dimension K-factor. The K-factor and story-multiplier
// tables are the only configuration surface.
package rating

import (
	"math"

	"github.com/jonathan/civicpulse/internal/types"
)

// KFactors controls how fast each dimension moves. Integrity moves fastest
// because integrity stories carry the most signal per item; consistency
// moves slowest because it is only meaningful over long windows.
var KFactors = map[types.Dimension]int{
	types.DimensionOverall:       32,
	types.DimensionTransparency:  24,
	types.DimensionEffectiveness: 24,
	types.DimensionIntegrity:     40,
	types.DimensionConsistency:   16,
	types.DimensionConstituency:  24,
}

// StoryMultipliers scales impact by story type. Unknown labels use 1.0.
var StoryMultipliers = map[string]float64{
	types.StoryScandal:       1.5,
	types.StoryControversy:   1.4,
	types.StoryPolicy:        1.2,
	types.StoryAchievement:   1.0,
	types.StoryRoutine:       0.8,
	types.StoryHumanInterest: 0.5,
}

// KFactor returns the configured K-factor for a dimension, falling back to
// the overall K-factor for unknown dimensions.
func KFactor(d types.Dimension) int {
	if k, ok := KFactors[d]; ok {
		return k
	}
	return KFactors[types.DimensionOverall]
}

// StoryMultiplier returns the impact multiplier for a story type.
func StoryMultiplier(storyType string) float64 {
	if m, ok := StoryMultipliers[storyType]; ok {
		return m
	}
	return 1.0
}

// Delta computes the signed rating delta for one piece of evidence.
// impact is in [-10,+10], credibility and recency in [0,1].
func Delta(impact, credibility, recency, storyMultiplier float64, k int) int {
	return int(math.Round(impact * credibility * recency * storyMultiplier / 10 * float64(k)))
}

// Update applies a delta to a rating and clamps the result to the rating
// bounds.
func Update(current, delta int) int {
	return Clamp(current + delta)
}

// Clamp bounds a rating to [MinRating, MaxRating].
func Clamp(rating int) int {
	if rating < types.MinRating {
		return types.MinRating
	}
	if rating > types.MaxRating {
		return types.MaxRating
	}
	return rating
}
