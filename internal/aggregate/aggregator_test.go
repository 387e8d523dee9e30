package aggregate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/civicpulse/internal/db"
	"github.com/jonathan/civicpulse/internal/scoring"
	"github.com/jonathan/civicpulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store. Reads hand out copies, as a real
// datastore would, so a failed commit never leaks partial mutation back
// into the stored state.
type fakeStore struct {
	processed map[uuid.UUID]bool
	records   map[uuid.UUID]*types.RatingRecord
	events    []types.RatingEvent
	vectors   map[uuid.UUID]*types.IdeologyVector
	consensus []*types.ConsensusResult

	conflicts   int // CommitAnalysis failures to inject before succeeding
	vectorErr   error
	recordReads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		processed: map[uuid.UUID]bool{},
		records:   map[uuid.UUID]*types.RatingRecord{},
		vectors:   map[uuid.UUID]*types.IdeologyVector{},
	}
}

func (f *fakeStore) EvidenceProcessed(_ context.Context, id uuid.UUID) (bool, error) {
	return f.processed[id], nil
}

func (f *fakeStore) RatingRecord(_ context.Context, repID uuid.UUID) (*types.RatingRecord, error) {
	f.recordReads++
	record, ok := f.records[repID]
	if !ok {
		return nil, nil
	}
	return cloneRecord(record), nil
}

func (f *fakeStore) CommitAnalysis(_ context.Context, record *types.RatingRecord, events []types.RatingEvent, evidence *types.EvidenceItem, consensus *types.ConsensusResult) error {
	if f.conflicts > 0 {
		f.conflicts--
		return db.ErrVersionConflict
	}
	stored := cloneRecord(record)
	stored.Version++
	f.records[record.RepresentativeID] = stored
	f.events = append(f.events, events...)
	f.consensus = append(f.consensus, consensus)
	f.processed[evidence.ID] = true
	return nil
}

func (f *fakeStore) IdeologyVector(_ context.Context, repID uuid.UUID) (*types.IdeologyVector, error) {
	v, ok := f.vectors[repID]
	if !ok {
		return nil, nil
	}
	clone := *v
	return &clone, nil
}

func (f *fakeStore) SaveIdeologyVector(_ context.Context, repID uuid.UUID, v *types.IdeologyVector) error {
	if f.vectorErr != nil {
		return f.vectorErr
	}
	clone := *v
	f.vectors[repID] = &clone
	return nil
}

func cloneRecord(r *types.RatingRecord) *types.RatingRecord {
	clone := *r
	clone.Ratings = make(map[types.Dimension]int, len(r.Ratings))
	for d, v := range r.Ratings {
		clone.Ratings[d] = v
	}
	clone.Scores = make(map[types.Dimension]float64, len(r.Scores))
	for d, v := range r.Scores {
		clone.Scores[d] = v
	}
	return &clone
}

func scandalConsensus(repID, evidenceID uuid.UUID) *types.ConsensusResult {
	return &types.ConsensusResult{
		EvidenceID:       evidenceID,
		RepresentativeID: repID,
		Impact:           -6,
		Scores: map[types.Dimension]float64{
			types.DimensionIntegrity:    35,
			types.DimensionTransparency: 44,
		},
		Confidence: 0.8,
		Level:      types.AgreementUnanimous,
		StoryType:  types.StoryScandal,
		CreatedAt:  time.Now(),
	}
}

func freshEvidence(repID uuid.UUID) *types.EvidenceItem {
	return &types.EvidenceItem{
		ID:               uuid.New(),
		RepresentativeID: repID,
		Title:            "Tribunal hears expenses evidence",
		SourceID:         "rte",
		Credibility:      0.9,
		PublishedAt:      time.Now().AddDate(0, 0, -2),
	}
}

func TestApply_CommitsLedgerEvents(t *testing.T) {
	store := newFakeStore()
	repID := uuid.New()
	evidence := freshEvidence(repID)
	consensus := scandalConsensus(repID, evidence.ID)

	err := New(store).Apply(context.Background(), consensus, evidence, nil)
	require.NoError(t, err)

	// Fresh scandal evidence at credibility 0.9: overall moves by
	// round(-6*0.9*1.5/10*32) = -26, integrity (score 35, impact -3) by
	// -16, transparency (score 44, impact -1.2) by -4.
	byDim := map[types.Dimension]types.RatingEvent{}
	for _, e := range store.events {
		byDim[e.Dimension] = e
	}
	require.Len(t, store.events, 3)
	assert.Equal(t, -26, byDim[types.DimensionOverall].Delta)
	assert.Equal(t, -16, byDim[types.DimensionIntegrity].Delta)
	assert.Equal(t, -4, byDim[types.DimensionTransparency].Delta)

	record := store.records[repID]
	require.NotNil(t, record)
	assert.Equal(t, 1174, record.Ratings[types.DimensionOverall])
	assert.Equal(t, 1184, record.Ratings[types.DimensionIntegrity])
	assert.Equal(t, 1196, record.Ratings[types.DimensionTransparency])
	assert.Equal(t, types.BaselineRating, record.Ratings[types.DimensionEffectiveness])

	assert.Equal(t, 1, record.SourceCount)
	assert.InDelta(t, 0.25, record.Confidence, 0.001)

	assert.True(t, evidence.Analyzed)
	assert.Equal(t, types.StoryScandal, evidence.StoryType)
	assert.InDelta(t, -3.0, evidence.Impacts[types.DimensionIntegrity], 0.001)
}

func TestApply_LedgerFoldsBackToRecord(t *testing.T) {
	store := newFakeStore()
	repID := uuid.New()

	agg := New(store)
	for i := 0; i < 4; i++ {
		evidence := freshEvidence(repID)
		consensus := scandalConsensus(repID, evidence.ID)
		consensus.Impact = float64(i - 2) // mix of signs and a zero
		require.NoError(t, agg.Apply(context.Background(), consensus, evidence, nil))
	}

	// Replaying every event on top of the baseline reproduces the record.
	folded := map[types.Dimension]int{}
	for _, d := range types.AllDimensions() {
		folded[d] = types.BaselineRating
	}
	for _, e := range store.events {
		folded[e.Dimension] += e.Delta
	}

	record := store.records[repID]
	for _, d := range types.AllDimensions() {
		assert.Equal(t, folded[d], record.Ratings[d], "dimension %s", d)
	}
}

func TestApply_SecondApplyIsNoOp(t *testing.T) {
	store := newFakeStore()
	repID := uuid.New()
	evidence := freshEvidence(repID)
	consensus := scandalConsensus(repID, evidence.ID)

	agg := New(store)
	require.NoError(t, agg.Apply(context.Background(), consensus, evidence, nil))
	eventCount := len(store.events)
	record := cloneRecord(store.records[repID])

	require.NoError(t, agg.Apply(context.Background(), consensus, evidence, nil))

	assert.Len(t, store.events, eventCount)
	assert.Equal(t, record.Ratings, store.records[repID].Ratings)
	assert.Equal(t, record.SourceCount, store.records[repID].SourceCount)
}

func TestApply_ReviewRequiredCommitsNoEvents(t *testing.T) {
	store := newFakeStore()
	repID := uuid.New()
	evidence := freshEvidence(repID)
	consensus := scandalConsensus(repID, evidence.ID)
	consensus.Level = types.AgreementContested
	consensus.ReviewRequired = true

	err := New(store).Apply(context.Background(), consensus, evidence, nil)
	require.NoError(t, err)

	// The consensus itself is persisted and the evidence marked processed,
	// but the published ratings are untouched.
	assert.Empty(t, store.events)
	assert.Len(t, store.consensus, 1)
	assert.True(t, store.processed[evidence.ID])

	record := store.records[repID]
	assert.Equal(t, types.BaselineRating, record.Ratings[types.DimensionOverall])
	assert.Equal(t, 0, record.SourceCount)

	// The evidence stays unanalyzed until a human resolves the run.
	assert.False(t, evidence.Analyzed)
	assert.Zero(t, evidence.OverallImpact)
	assert.Empty(t, evidence.Impacts)
}

func TestApply_ReviewRequiredLeavesNewsPillarNeutral(t *testing.T) {
	store := newFakeStore()
	repID := uuid.New()
	evidence := freshEvidence(repID)
	consensus := scandalConsensus(repID, evidence.ID)
	consensus.Level = types.AgreementContested
	consensus.ReviewRequired = true

	require.NoError(t, New(store).Apply(context.Background(), consensus, evidence, nil))

	// A contested impact must not leak into the published score through
	// the news calculator on the next recalculation.
	assert.Equal(t, 50.0, scoring.NewsScore([]types.EvidenceItem{*evidence}, time.Now()))
}

func TestApply_RetriesOnVersionConflict(t *testing.T) {
	store := newFakeStore()
	store.conflicts = 2
	repID := uuid.New()
	evidence := freshEvidence(repID)

	err := New(store).Apply(context.Background(), scandalConsensus(repID, evidence.ID), evidence, nil)
	require.NoError(t, err)

	// Each conflict forces a fresh read before recomputing.
	assert.Equal(t, 3, store.recordReads)
	assert.Len(t, store.events, 3)
}

func TestApply_GivesUpAfterRetriesExhausted(t *testing.T) {
	store := newFakeStore()
	store.conflicts = 3
	repID := uuid.New()
	evidence := freshEvidence(repID)

	err := New(store).Apply(context.Background(), scandalConsensus(repID, evidence.ID), evidence, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrVersionConflict)
	assert.Empty(t, store.events)
}

func TestApply_MergesIdeologyVector(t *testing.T) {
	store := newFakeStore()
	repID := uuid.New()
	evidence := freshEvidence(repID)
	ideology := &types.IdeologyAnalysis{
		Deltas:     [types.IdeologyAxisCount]float64{0.4},
		Stance:     "centre-right",
		Confidence: 0.7,
	}

	err := New(store).Apply(context.Background(), scandalConsensus(repID, evidence.ID), evidence, ideology)
	require.NoError(t, err)

	vector := store.vectors[repID]
	require.NotNil(t, vector)
	assert.InDelta(t, 0.4, vector.Positions[0], 0.001)
	assert.Equal(t, 1, vector.Updates)
}

func TestApply_IdeologyFailureDoesNotFailRun(t *testing.T) {
	store := newFakeStore()
	store.vectorErr = fmt.Errorf("connection reset")
	repID := uuid.New()
	evidence := freshEvidence(repID)
	ideology := &types.IdeologyAnalysis{Stance: "centre", Confidence: 0.5}

	err := New(store).Apply(context.Background(), scandalConsensus(repID, evidence.ID), evidence, ideology)

	// Vector persistence is best-effort; the ledger commit already
	// succeeded.
	require.NoError(t, err)
	assert.Len(t, store.events, 3)
}
