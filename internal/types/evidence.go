package types

import (
	"time"

	"github.com/google/uuid"
)

// Story types recognised by the scoring tables. Unknown labels fall back to
// a multiplier of 1.0.
const (
	StoryScandal       = "scandal"
	StoryControversy   = "controversy"
	StoryPolicy        = "policy"
	StoryAchievement   = "achievement"
	StoryRoutine       = "routine"
	StoryHumanInterest = "human_interest"
)

// EvidenceItem is a news article or activity record tied to one
// representative. The ingestion collaborator supplies it with text,
// publish date, source and credibility; the consensus pipeline enriches it
// once with per-dimension impacts and a story type. It is never mutated
// after analysis.
type EvidenceItem struct {
	ID               uuid.UUID `json:"id"`
	RepresentativeID uuid.UUID `json:"representative_id"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	SourceID         string    `json:"source_id"`
	Credibility      float64   `json:"credibility"` // [0,1]
	PublishedAt      time.Time `json:"published_at"`

	// Set once by analysis.
	StoryType     string                `json:"story_type,omitempty"`
	Impacts       map[Dimension]float64 `json:"impacts,omitempty"` // signed, [-10,+10]
	OverallImpact float64               `json:"overall_impact,omitempty"`
	Analyzed      bool                  `json:"analyzed"`
}

// AgeDays returns the age of the evidence at the given reference time.
func (e *EvidenceItem) AgeDays(now time.Time) float64 {
	return now.Sub(e.PublishedAt).Hours() / 24
}
