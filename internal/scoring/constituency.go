package scoring

import "github.com/jonathan/civicpulse/internal/types"

// ConstituencyScore derives the constituency pillar from the
// constituency_service rating. A representative with no analyzed evidence
// has not been measured yet; "not yet measured" is a first-class state and
// scores neutral rather than zero.
func ConstituencyScore(record *types.RatingRecord) float64 {
	if record == nil || record.SourceCount == 0 {
		return NeutralScore
	}
	return clampScore(record.Scores[types.DimensionConstituency])
}
