package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/civicpulse/internal/types"
)

// IdeologyVector retrieves the representative's position vector, or nil if
// none has been recorded
func (db *DB) IdeologyVector(ctx context.Context, repID uuid.UUID) (*types.IdeologyVector, error) {
	var positionsJSON []byte
	var vector types.IdeologyVector
	err := db.pool.QueryRow(ctx,
		`SELECT positions, updates FROM ideology_vectors WHERE representative_id = $1`,
		repID,
	).Scan(&positionsJSON, &vector.Updates)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ideology vector: %w", err)
	}

	if err := json.Unmarshal(positionsJSON, &vector.Positions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal positions: %w", err)
	}
	return &vector, nil
}

// SaveIdeologyVector upserts the representative's position vector
func (db *DB) SaveIdeologyVector(ctx context.Context, repID uuid.UUID, v *types.IdeologyVector) error {
	positionsJSON, err := json.Marshal(v.Positions)
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO ideology_vectors (representative_id, positions, updates, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (representative_id) DO UPDATE
		 SET positions = $2, updates = $3, updated_at = NOW()`,
		repID, positionsJSON, v.Updates,
	)
	if err != nil {
		return fmt.Errorf("failed to save ideology vector: %w", err)
	}
	return nil
}
