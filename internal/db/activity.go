package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/civicpulse/internal/types"
)

// ParliamentaryActivity retrieves the representative's recorded Dáil
// activity, or nil if none has been recorded
func (db *DB) ParliamentaryActivity(ctx context.Context, repID uuid.UUID) (*types.ParliamentaryActivity, error) {
	var activity types.ParliamentaryActivity
	err := db.pool.QueryRow(ctx,
		`SELECT questions_asked, attendance_pct, committee_meetings
		 FROM parliamentary_activity WHERE representative_id = $1`,
		repID,
	).Scan(&activity.QuestionsAsked, &activity.AttendancePct, &activity.CommitteeMeetings)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parliamentary activity: %w", err)
	}
	return &activity, nil
}

// SaveParliamentaryActivity upserts the representative's activity record
func (db *DB) SaveParliamentaryActivity(ctx context.Context, repID uuid.UUID, activity *types.ParliamentaryActivity) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO parliamentary_activity
		   (representative_id, questions_asked, attendance_pct, committee_meetings, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (representative_id) DO UPDATE
		 SET questions_asked = $2, attendance_pct = $3, committee_meetings = $4, updated_at = NOW()`,
		repID, activity.QuestionsAsked, activity.AttendancePct, activity.CommitteeMeetings,
	)
	if err != nil {
		return fmt.Errorf("failed to save parliamentary activity: %w", err)
	}
	return nil
}

// TrustTally retrieves the representative's public trust vote counts. A
// representative no one has voted on yet gets a zero tally
func (db *DB) TrustTally(ctx context.Context, repID uuid.UUID) (types.TrustTally, error) {
	var tally types.TrustTally
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE trust), COUNT(*) FILTER (WHERE NOT trust)
		 FROM trust_votes WHERE representative_id = $1`,
		repID,
	).Scan(&tally.Trust, &tally.Distrust)
	if err != nil {
		return types.TrustTally{}, fmt.Errorf("failed to get trust tally: %w", err)
	}
	return tally, nil
}

// RecordTrustVote appends one public trust or distrust vote
func (db *DB) RecordTrustVote(ctx context.Context, repID uuid.UUID, voterID uuid.UUID, trust bool) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO trust_votes (representative_id, voter_id, trust, created_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (representative_id, voter_id) DO UPDATE SET trust = $3, created_at = NOW()`,
		repID, voterID, trust,
	)
	if err != nil {
		return fmt.Errorf("failed to record trust vote: %w", err)
	}
	return nil
}
