package scoring

import "github.com/jonathan/civicpulse/internal/types"

// Public trust thresholds. Below minTrustVotes the sample is too small to
// publish and the pillar is pinned at neutral; the damping floor keeps a
// handful of early votes from swinging the score to an extreme.
const (
	minTrustVotes      = 10
	trustDampingFactor = 25.0
)

// PublicTrustScore computes the public trust pillar from the vote tally.
func PublicTrustScore(tally types.TrustTally) float64 {
	total := tally.Total()
	if total < minTrustVotes {
		return NeutralScore
	}

	denom := float64(total)
	if denom < trustDampingFactor {
		denom = trustDampingFactor
	}
	return clampScore(50 + 50*float64(tally.Trust-tally.Distrust)/denom)
}
