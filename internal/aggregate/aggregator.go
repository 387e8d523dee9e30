// Package aggregate turns one consensus result into rating-ledger events
// and applies them to the representative's rating record.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/civicpulse/internal/db"
	"github.com/jonathan/civicpulse/internal/rating"
	"github.com/jonathan/civicpulse/internal/types"
)

// maxCommitRetries bounds the fresh-read retry loop on version conflicts.
const maxCommitRetries = 3

// Store is the slice of the datastore the aggregator needs.
type Store interface {
	// EvidenceProcessed reports whether the evidence item has already been
	// folded into the ledger.
	EvidenceProcessed(ctx context.Context, evidenceID uuid.UUID) (bool, error)

	// RatingRecord returns the current record, or nil if the
	// representative has none yet.
	RatingRecord(ctx context.Context, repID uuid.UUID) (*types.RatingRecord, error)

	// CommitAnalysis atomically writes the record (checking its version),
	// appends the events, persists the consensus and the enriched evidence,
	// and marks the evidence processed. Returns db.ErrVersionConflict when
	// the record's version is stale.
	CommitAnalysis(ctx context.Context, record *types.RatingRecord, events []types.RatingEvent, evidence *types.EvidenceItem, consensus *types.ConsensusResult) error

	// IdeologyVector returns the current vector, or nil if none exists.
	IdeologyVector(ctx context.Context, repID uuid.UUID) (*types.IdeologyVector, error)

	SaveIdeologyVector(ctx context.Context, repID uuid.UUID, v *types.IdeologyVector) error
}

// Aggregator folds consensus results into rating records.
type Aggregator struct {
	store Store
	now   func() time.Time
}

// New creates an Aggregator over the given store.
func New(store Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// Apply folds one consensus result into the representative's ratings.
// It is idempotent per evidence item: the processed marker is checked here
// and written in the same transaction as the events, so a crash between
// the two cannot double-count. On a version conflict the record is
// re-read and the update recomputed, up to maxCommitRetries times.
//
// A ReviewRequired consensus is persisted but commits no rating events;
// the published score is untouched until a human resolves the run.
func (a *Aggregator) Apply(ctx context.Context, consensus *types.ConsensusResult, evidence *types.EvidenceItem, ideology *types.IdeologyAnalysis) error {
	processed, err := a.store.EvidenceProcessed(ctx, evidence.ID)
	if err != nil {
		return fmt.Errorf("failed to check processed marker: %w", err)
	}
	if processed {
		return nil
	}

	now := a.now()
	recency := rating.RecencyWeight(evidence.AgeDays(now))
	mult := rating.StoryMultiplier(consensus.StoryType)

	// A contested consensus leaves the evidence unanalyzed: neither the
	// ledger nor the news pillar moves until a human resolves the run.
	if !consensus.ReviewRequired {
		enrichEvidence(evidence, consensus)
	}

	committed := false
	for attempt := 0; attempt < maxCommitRetries && !committed; attempt++ {
		record, err := a.store.RatingRecord(ctx, consensus.RepresentativeID)
		if err != nil {
			return fmt.Errorf("failed to read rating record: %w", err)
		}
		if record == nil {
			record = types.NewRatingRecord(consensus.RepresentativeID)
		}

		var events []types.RatingEvent
		if !consensus.ReviewRequired {
			events = buildEvents(record, consensus, evidence, recency, mult, now)
			record.SourceCount++
			record.Confidence = sourceConfidence(record.SourceCount)
		}
		record.UpdatedAt = now

		switch err := a.store.CommitAnalysis(ctx, record, events, evidence, consensus); {
		case err == nil:
			committed = true
		case errors.Is(err, db.ErrVersionConflict):
			// Someone else moved the record between our read and write.
			// Take a fresh read and recompute.
		default:
			return fmt.Errorf("failed to commit analysis: %w", err)
		}
	}
	if !committed {
		return fmt.Errorf("rating update for %s not committed after %d attempts: %w",
			consensus.RepresentativeID, maxCommitRetries, db.ErrVersionConflict)
	}

	if ideology != nil {
		if err := a.mergeIdeology(ctx, consensus.RepresentativeID, ideology, recency); err != nil {
			fmt.Printf("Warning: ideology vector not updated: %v\n", err)
		}
	}

	return nil
}

// buildEvents computes the ledger events for one consensus and applies
// them to the record in place. The overall dimension moves by the
// consensus impact; each scored dimension moves by its score converted
// back to a signed impact. Zero deltas produce no event.
func buildEvents(record *types.RatingRecord, consensus *types.ConsensusResult, evidence *types.EvidenceItem, recency, mult float64, now time.Time) []types.RatingEvent {
	var events []types.RatingEvent

	apply := func(d types.Dimension, impact float64) {
		k := rating.KFactor(d)
		delta := rating.Delta(impact, evidence.Credibility, recency, mult, k)
		if delta == 0 {
			return
		}
		old := record.Ratings[d]
		updated := rating.Update(old, delta)
		record.Ratings[d] = updated
		record.Scores[d] = types.ProjectRating(updated)
		events = append(events, types.RatingEvent{
			ID:               uuid.New(),
			RepresentativeID: record.RepresentativeID,
			EvidenceID:       evidence.ID,
			Dimension:        d,
			OldRating:        old,
			NewRating:        updated,
			Delta:            updated - old,
			CreatedAt:        now,
		})
	}

	apply(types.DimensionOverall, consensus.Impact)
	for _, d := range types.ImpactDimensions() {
		score, ok := consensus.Scores[d]
		if !ok {
			continue
		}
		apply(d, scoreToImpact(score))
	}

	return events
}

// scoreToImpact converts a 0-100 dimension score back onto the signed
// impact scale, the inverse of the 50+impact*5 projection.
func scoreToImpact(score float64) float64 {
	return (score - 50) / 5
}

// sourceConfidence grows with the number of analyzed items and saturates
// at four sources.
func sourceConfidence(sources int) float64 {
	conf := float64(sources) / 4
	if conf > 1 {
		conf = 1
	}
	return conf
}

// enrichEvidence writes the analysis results onto the evidence item. This
// happens exactly once; analyzed evidence is never re-scored.
func enrichEvidence(evidence *types.EvidenceItem, consensus *types.ConsensusResult) {
	if consensus.StoryType != "" {
		evidence.StoryType = consensus.StoryType
	}
	evidence.OverallImpact = consensus.Impact
	evidence.Impacts = make(map[types.Dimension]float64, len(consensus.Scores))
	for d, score := range consensus.Scores {
		evidence.Impacts[d] = scoreToImpact(score)
	}
	evidence.Analyzed = true
}

func (a *Aggregator) mergeIdeology(ctx context.Context, repID uuid.UUID, analysis *types.IdeologyAnalysis, recency float64) error {
	vector, err := a.store.IdeologyVector(ctx, repID)
	if err != nil {
		return fmt.Errorf("failed to read ideology vector: %w", err)
	}
	if vector == nil {
		vector = &types.IdeologyVector{}
	}

	merged := MergeDeltas(vector, analysis.Deltas, recency)
	if err := a.store.SaveIdeologyVector(ctx, repID, merged); err != nil {
		return fmt.Errorf("failed to save ideology vector: %w", err)
	}
	return nil
}
