package aggregate

import (
	"math"

	"github.com/jonathan/civicpulse/internal/types"
)

// MergeDeltas folds one ideology analysis into a position vector. Each raw
// axis delta passes through three transforms, composed in a fixed order:
//
//  1. time decay: the same recency weight the rating primitive uses, so
//     stale evidence moves positions less;
//  2. extremity penalty: 1 - |current|/0.5, so positions already near a
//     bound resist further movement toward it;
//  3. adaptive scaling: 1/sqrt(1+updates), so a well-established vector
//     moves less per article than a fresh one.
//
// The extremity penalty reads the pre-merge position and the adaptive
// factor reads the pre-merge update count; the result is clamped to the
// axis bound. The input vector is not mutated.
func MergeDeltas(v *types.IdeologyVector, deltas [types.IdeologyAxisCount]float64, recency float64) *types.IdeologyVector {
	adaptive := 1 / math.Sqrt(1+float64(v.Updates))

	next := &types.IdeologyVector{Updates: v.Updates + 1}
	for i, d := range deltas {
		cur := v.Positions[i]
		d *= recency
		d *= 1 - math.Abs(cur)/types.IdeologyBound
		d *= adaptive
		next.Positions[i] = types.ClampAxis(cur + d)
	}
	return next
}
