package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/civicpulse/internal/types"
)

// SaveEvidence inserts an evidence item, or refreshes its text on conflict
func (db *DB) SaveEvidence(ctx context.Context, e *types.EvidenceItem) error {
	impactsJSON, err := json.Marshal(e.Impacts)
	if err != nil {
		return fmt.Errorf("failed to marshal impacts: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO evidence (id, representative_id, title, body, source_id, credibility,
		                       published_at, story_type, impacts, overall_impact, analyzed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET title = $3, body = $4, credibility = $6`,
		e.ID, e.RepresentativeID, e.Title, e.Body, e.SourceID, e.Credibility,
		e.PublishedAt, e.StoryType, impactsJSON, e.OverallImpact, e.Analyzed,
	)
	if err != nil {
		return fmt.Errorf("failed to save evidence: %w", err)
	}
	return nil
}

// GetEvidence retrieves an evidence item by ID
func (db *DB) GetEvidence(ctx context.Context, evidenceID uuid.UUID) (*types.EvidenceItem, error) {
	var e types.EvidenceItem
	var impactsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, representative_id, title, body, source_id, credibility,
		        published_at, story_type, impacts, overall_impact, analyzed
		 FROM evidence WHERE id = $1`,
		evidenceID,
	).Scan(&e.ID, &e.RepresentativeID, &e.Title, &e.Body, &e.SourceID, &e.Credibility,
		&e.PublishedAt, &e.StoryType, &impactsJSON, &e.OverallImpact, &e.Analyzed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}

	if impactsJSON != nil {
		if err := json.Unmarshal(impactsJSON, &e.Impacts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal impacts: %w", err)
		}
	}
	return &e, nil
}

// EvidenceForRepresentative retrieves all evidence tied to one representative
func (db *DB) EvidenceForRepresentative(ctx context.Context, repID uuid.UUID) ([]types.EvidenceItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, representative_id, title, body, source_id, credibility,
		        published_at, story_type, impacts, overall_impact, analyzed
		 FROM evidence WHERE representative_id = $1 ORDER BY published_at DESC`,
		repID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	var items []types.EvidenceItem
	for rows.Next() {
		var e types.EvidenceItem
		var impactsJSON []byte
		if err := rows.Scan(&e.ID, &e.RepresentativeID, &e.Title, &e.Body, &e.SourceID, &e.Credibility,
			&e.PublishedAt, &e.StoryType, &impactsJSON, &e.OverallImpact, &e.Analyzed); err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		if impactsJSON != nil {
			if err := json.Unmarshal(impactsJSON, &e.Impacts); err != nil {
				return nil, fmt.Errorf("failed to unmarshal impacts: %w", err)
			}
		}
		items = append(items, e)
	}
	return items, nil
}

// EvidenceProcessed reports whether the evidence has been folded into the
// rating ledger
func (db *DB) EvidenceProcessed(ctx context.Context, evidenceID uuid.UUID) (bool, error) {
	var processed bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM processed_evidence WHERE evidence_id = $1)`,
		evidenceID,
	).Scan(&processed)
	if err != nil {
		return false, fmt.Errorf("failed to check processed marker: %w", err)
	}
	return processed, nil
}
