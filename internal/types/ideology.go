package types

// IdeologyAxisCount is the number of tracked policy-position axes.
const IdeologyAxisCount = 8

// IdeologyAxes names the tracked axes, in vector order.
var IdeologyAxes = [IdeologyAxisCount]string{
	"economic",
	"social",
	"environmental",
	"immigration",
	"europe",
	"housing",
	"health",
	"justice",
}

// Bound for each ideology axis position and for a single analysis delta.
const IdeologyBound = 0.5

// IdeologyVector is a per-representative (or per-party) policy-position
// estimate. Each axis stays within [-0.5,+0.5].
type IdeologyVector struct {
	Positions [IdeologyAxisCount]float64 `json:"positions"`
	Updates   int                        `json:"updates"` // applied delta count, drives adaptive scaling
}

// IdeologyAnalysis is the ideology analyst's output for one evidence item.
type IdeologyAnalysis struct {
	Deltas     [IdeologyAxisCount]float64 `json:"deltas"` // each clamped to [-0.5,+0.5]
	Stance     string                     `json:"stance"` // qualitative judgment, e.g. "centre-left"
	Confidence float64                    `json:"confidence"`
}

// ClampAxis bounds a single axis value or delta to [-IdeologyBound,+IdeologyBound].
func ClampAxis(v float64) float64 {
	if v > IdeologyBound {
		return IdeologyBound
	}
	if v < -IdeologyBound {
		return -IdeologyBound
	}
	return v
}
