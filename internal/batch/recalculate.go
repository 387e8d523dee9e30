// Package batch implements the scheduled recalculate-all job: refresh
// every active representative's scorecard and recompute the ranking table.
package batch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/civicpulse/internal/scoring"
	"github.com/jonathan/civicpulse/internal/types"
)

// batchConcurrency bounds how many representatives are recalculated at
// once.
const batchConcurrency = 10

// Delta windows for the published movement indicators.
const (
	weeklyWindow  = 7 * 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
)

// Store is the slice of the datastore the job needs.
type Store interface {
	ActiveRepresentatives(ctx context.Context) ([]types.Representative, error)
	RatingRecord(ctx context.Context, repID uuid.UUID) (*types.RatingRecord, error)
	EvidenceForRepresentative(ctx context.Context, repID uuid.UUID) ([]types.EvidenceItem, error)
	ParliamentaryActivity(ctx context.Context, repID uuid.UUID) (*types.ParliamentaryActivity, error)
	TrustTally(ctx context.Context, repID uuid.UUID) (types.TrustTally, error)
	RatingEventsSince(ctx context.Context, repID uuid.UUID, since time.Time) ([]types.RatingEvent, error)
	SaveRatingRecord(ctx context.Context, record *types.RatingRecord) error
	UpdateRanks(ctx context.Context, ranks map[uuid.UUID]int) error
}

// Summary reports one batch run. A representative's failure lands here,
// never aborts the rest of the batch.
type Summary struct {
	Processed int
	Failed    int
	Failures  []string
	Duration  time.Duration
}

// Job recalculates scores and ranks for the whole chamber.
type Job struct {
	store       Store
	now         func() time.Time
	concurrency int
}

// NewJob creates a recalculation job over the given store.
func NewJob(store Store) *Job {
	return &Job{store: store, now: time.Now, concurrency: batchConcurrency}
}

// SetConcurrency overrides the fan-out width. Zero or negative keeps the
// default.
func (j *Job) SetConcurrency(n int) {
	if n > 0 {
		j.concurrency = n
	}
}

type outcome struct {
	rep     types.Representative
	overall float64
	err     error
}

// Run recalculates every active representative and rewrites the ranking
// table. The job is idempotent: running it twice against unchanged data
// produces identical records and ranks.
func (j *Job) Run(ctx context.Context) (*Summary, error) {
	started := j.now()

	reps, err := j.store.ActiveRepresentatives(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list representatives: %w", err)
	}

	outcomes := make([]outcome, len(reps))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for i, rep := range reps {
		i, rep := i, rep
		g.Go(func() error {
			overall, err := j.recalculate(gCtx, rep)
			outcomes[i] = outcome{rep: rep, overall: overall, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	var ranked []outcome
	for _, o := range outcomes {
		if o.err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", o.rep.Name, o.err))
			continue
		}
		summary.Processed++
		ranked = append(ranked, o)
	}

	if len(ranked) > 0 {
		if err := j.store.UpdateRanks(ctx, denseRanks(ranked)); err != nil {
			return nil, fmt.Errorf("failed to update ranks: %w", err)
		}
	}

	summary.Duration = j.now().Sub(started)
	return summary, nil
}

// recalculate refreshes one representative's record and returns the
// unified overall score used for ranking.
func (j *Job) recalculate(ctx context.Context, rep types.Representative) (float64, error) {
	record, err := j.store.RatingRecord(ctx, rep.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to read rating record: %w", err)
	}
	if record == nil {
		record = types.NewRatingRecord(rep.ID)
	}

	evidence, err := j.store.EvidenceForRepresentative(ctx, rep.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to read evidence: %w", err)
	}
	activity, err := j.store.ParliamentaryActivity(ctx, rep.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to read parliamentary activity: %w", err)
	}
	trust, err := j.store.TrustTally(ctx, rep.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to read trust tally: %w", err)
	}

	now := j.now()
	card := scoring.Unified(scoring.Inputs{
		Record:   record,
		Evidence: evidence,
		Activity: activity,
		Trust:    trust,
		Now:      now,
	})

	weekly, monthly, err := j.movement(ctx, rep.ID, now)
	if err != nil {
		return 0, err
	}

	record.Confidence = card.Confidence
	record.WeeklyDelta = weekly
	record.MonthlyDelta = monthly
	record.UpdatedAt = now

	if err := j.store.SaveRatingRecord(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to save rating record: %w", err)
	}
	return card.Overall, nil
}

// movement sums the overall-dimension ledger deltas inside each window.
func (j *Job) movement(ctx context.Context, repID uuid.UUID, now time.Time) (weekly, monthly int, err error) {
	events, err := j.store.RatingEventsSince(ctx, repID, now.Add(-monthlyWindow))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read rating events: %w", err)
	}

	weekCutoff := now.Add(-weeklyWindow)
	for _, e := range events {
		if e.Dimension != types.DimensionOverall {
			continue
		}
		monthly += e.Delta
		if e.CreatedAt.After(weekCutoff) {
			weekly += e.Delta
		}
	}
	return weekly, monthly, nil
}

// denseRanks assigns 1, 2, 2, 3-style ranks by overall score descending.
func denseRanks(outcomes []outcome) map[uuid.UUID]int {
	sorted := make([]outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].overall != sorted[j].overall {
			return sorted[i].overall > sorted[j].overall
		}
		return sorted[i].rep.ID.String() < sorted[j].rep.ID.String()
	})

	ranks := make(map[uuid.UUID]int, len(sorted))
	rank := 0
	prev := -1.0
	for _, o := range sorted {
		if o.overall != prev {
			rank++
			prev = o.overall
		}
		ranks[o.rep.ID] = rank
	}
	return ranks
}
