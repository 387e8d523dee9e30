package rating

import "math"

// Recency decay parameters. Evidence keeps full weight for a month, then
// decays exponentially with a 90-day half-life. The floor keeps old
// evidence from ever reaching zero influence.
const (
	recencyFullWindowDays = 30.0
	recencyHalfLifeDays   = 90.0
	recencyFloor          = 0.3
)

// RecencyWeight returns the [0.3,1.0] weight for evidence of the given age
// in days. Ages at or below 30 days carry full weight.
func RecencyWeight(ageDays float64) float64 {
	if ageDays <= recencyFullWindowDays {
		return 1.0
	}
	w := math.Exp(-math.Ln2 * (ageDays - recencyFullWindowDays) / recencyHalfLifeDays)
	if w < recencyFloor {
		return recencyFloor
	}
	return w
}
