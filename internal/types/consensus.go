package types

import (
	"time"

	"github.com/google/uuid"
)

// AgreementLevel classifies how closely the agents agreed.
type AgreementLevel string

const (
	AgreementUnanimous AgreementLevel = "unanimous" // spread < 15 points
	AgreementSplit     AgreementLevel = "split"     // 15-30 points
	AgreementContested AgreementLevel = "contested" // > 30 points
)

// ConsensusResult is the arbitrator's synthesis of the agent reports for
// one evidence item. It is persisted as the authoritative analysis of that
// item. When ReviewRequired is set no rating deltas are committed; the
// result is kept for a human to resolve.
type ConsensusResult struct {
	EvidenceID       uuid.UUID             `json:"evidence_id"`
	RepresentativeID uuid.UUID             `json:"representative_id"`
	Scores           map[Dimension]float64 `json:"scores"` // 0-100 per dimension
	Impact           float64               `json:"impact"` // signed, [-10,+10]
	Confidence       float64               `json:"confidence"`
	Spread           float64               `json:"spread"` // max disagreement in points
	Level            AgreementLevel        `json:"level"`
	Disagreements    []string              `json:"disagreements,omitempty"`
	ReviewRequired   bool                  `json:"review_required"`
	StoryType        string                `json:"story_type"`
	CreatedAt        time.Time             `json:"created_at"`
}
