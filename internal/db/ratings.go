package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/civicpulse/internal/types"
)

// RatingRecord retrieves the current rating record, or nil if the
// representative has none yet
func (db *DB) RatingRecord(ctx context.Context, repID uuid.UUID) (*types.RatingRecord, error) {
	var record types.RatingRecord
	var ratingsJSON, scoresJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT representative_id, ratings, scores, rank, weekly_delta, monthly_delta,
		        confidence, source_count, version, updated_at
		 FROM rating_records WHERE representative_id = $1`,
		repID,
	).Scan(&record.RepresentativeID, &ratingsJSON, &scoresJSON, &record.Rank,
		&record.WeeklyDelta, &record.MonthlyDelta, &record.Confidence,
		&record.SourceCount, &record.Version, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rating record: %w", err)
	}

	if err := json.Unmarshal(ratingsJSON, &record.Ratings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ratings: %w", err)
	}
	if err := json.Unmarshal(scoresJSON, &record.Scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	return &record, nil
}

// SaveRatingRecord writes a record unconditionally, bumping its version.
// The batch job uses this; the aggregator goes through CommitAnalysis
func (db *DB) SaveRatingRecord(ctx context.Context, record *types.RatingRecord) error {
	return writeRecord(ctx, db.pool, record, false)
}

// CommitAnalysis atomically applies one consensus: the version-checked
// record write, the ledger events, the consensus row, the enriched
// evidence and the processed marker all land in a single transaction.
// Returns ErrVersionConflict if the record moved since it was read
func (db *DB) CommitAnalysis(ctx context.Context, record *types.RatingRecord, events []types.RatingEvent, evidence *types.EvidenceItem, consensus *types.ConsensusResult) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := writeRecord(ctx, tx, record, true); err != nil {
		return err
	}

	for _, e := range events {
		_, err := tx.Exec(ctx,
			`INSERT INTO rating_events (id, representative_id, evidence_id, dimension,
			                            old_rating, new_rating, delta, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, e.RepresentativeID, e.EvidenceID, e.Dimension,
			e.OldRating, e.NewRating, e.Delta, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rating event: %w", err)
		}
	}

	if err := insertConsensus(ctx, tx, consensus); err != nil {
		return err
	}

	impactsJSON, err := json.Marshal(evidence.Impacts)
	if err != nil {
		return fmt.Errorf("failed to marshal impacts: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE evidence
		 SET story_type = $1, impacts = $2, overall_impact = $3, analyzed = $4
		 WHERE id = $5`,
		evidence.StoryType, impactsJSON, evidence.OverallImpact, evidence.Analyzed, evidence.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update evidence analysis: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO processed_evidence (evidence_id, processed_at) VALUES ($1, NOW())`,
		evidence.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark evidence processed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// execer covers both the pool and an open transaction
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func writeRecord(ctx context.Context, q execer, record *types.RatingRecord, checkVersion bool) error {
	ratingsJSON, err := json.Marshal(record.Ratings)
	if err != nil {
		return fmt.Errorf("failed to marshal ratings: %w", err)
	}
	scoresJSON, err := json.Marshal(record.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	query := `INSERT INTO rating_records
	            (representative_id, ratings, scores, rank, weekly_delta, monthly_delta,
	             confidence, source_count, version, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9 + 1, $10)
	          ON CONFLICT (representative_id) DO UPDATE
	          SET ratings = $2, scores = $3, rank = $4, weekly_delta = $5,
	              monthly_delta = $6, confidence = $7, source_count = $8,
	              version = rating_records.version + 1, updated_at = $10`
	if checkVersion {
		query += ` WHERE rating_records.version = $9`
	}

	tag, err := q.Exec(ctx, query,
		record.RepresentativeID, ratingsJSON, scoresJSON, record.Rank,
		record.WeeklyDelta, record.MonthlyDelta, record.Confidence,
		record.SourceCount, record.Version, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write rating record: %w", err)
	}
	if checkVersion && tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func insertConsensus(ctx context.Context, tx pgx.Tx, consensus *types.ConsensusResult) error {
	scoresJSON, err := json.Marshal(consensus.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal consensus scores: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO consensus_results
		   (evidence_id, representative_id, scores, impact, confidence, spread,
		    agreement, disagreements, review_required, story_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		consensus.EvidenceID, consensus.RepresentativeID, scoresJSON, consensus.Impact,
		consensus.Confidence, consensus.Spread, consensus.Level, consensus.Disagreements,
		consensus.ReviewRequired, consensus.StoryType, consensus.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert consensus: %w", err)
	}
	return nil
}

// RatingEventsSince retrieves the representative's ledger entries created
// after the given time
func (db *DB) RatingEventsSince(ctx context.Context, repID uuid.UUID, since time.Time) ([]types.RatingEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, representative_id, evidence_id, dimension,
		        old_rating, new_rating, delta, created_at
		 FROM rating_events
		 WHERE representative_id = $1 AND created_at > $2
		 ORDER BY created_at`,
		repID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating events: %w", err)
	}
	defer rows.Close()

	var events []types.RatingEvent
	for rows.Next() {
		var e types.RatingEvent
		if err := rows.Scan(&e.ID, &e.RepresentativeID, &e.EvidenceID, &e.Dimension,
			&e.OldRating, &e.NewRating, &e.Delta, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// UpdateRanks rewrites the ranking column for the given representatives
func (db *DB) UpdateRanks(ctx context.Context, ranks map[uuid.UUID]int) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for repID, rank := range ranks {
		_, err := tx.Exec(ctx,
			`UPDATE rating_records SET rank = $1 WHERE representative_id = $2`,
			rank, repID,
		)
		if err != nil {
			return fmt.Errorf("failed to update rank: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ranks: %w", err)
	}
	return nil
}
