package types

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds. The baseline projects to exactly 50 on the 0-100 scale.
const (
	MinRating      = 400
	MaxRating      = 2000
	BaselineRating = 1200
)

// RatingRecord is the current per-dimension rating state for one
// representative. It is mutated only by the impact aggregator and the
// recalculation job; everything else reads it.
type RatingRecord struct {
	RepresentativeID uuid.UUID             `json:"representative_id"`
	Ratings          map[Dimension]int     `json:"ratings"`
	Scores           map[Dimension]float64 `json:"scores"` // cached 0-100 projections
	Rank             int                   `json:"rank"`
	WeeklyDelta      int                   `json:"weekly_delta"`
	MonthlyDelta     int                   `json:"monthly_delta"`
	Confidence       float64               `json:"confidence"`
	SourceCount      int                   `json:"source_count"`
	Version          int64                 `json:"version"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// NewRatingRecord returns a record pegged at the neutral baseline on every
// dimension.
func NewRatingRecord(repID uuid.UUID) *RatingRecord {
	ratings := make(map[Dimension]int, len(AllDimensions()))
	scores := make(map[Dimension]float64, len(AllDimensions()))
	for _, d := range AllDimensions() {
		ratings[d] = BaselineRating
		scores[d] = ProjectRating(BaselineRating)
	}
	return &RatingRecord{
		RepresentativeID: repID,
		Ratings:          ratings,
		Scores:           scores,
	}
}

// ProjectRating maps a bounded internal rating onto the published 0-100 scale.
func ProjectRating(rating int) float64 {
	return float64(rating-MinRating) / float64(MaxRating-MinRating) * 100
}

// RatingEvent is one immutable entry in the append-only rating ledger.
// Folding a dimension's deltas onto the baseline reproduces the current
// RatingRecord value for that dimension.
type RatingEvent struct {
	ID               uuid.UUID `json:"id"`
	RepresentativeID uuid.UUID `json:"representative_id"`
	EvidenceID       uuid.UUID `json:"evidence_id"`
	Dimension        Dimension `json:"dimension"`
	OldRating        int       `json:"old_rating"`
	NewRating        int       `json:"new_rating"`
	Delta            int       `json:"delta"`
	CreatedAt        time.Time `json:"created_at"`
}
