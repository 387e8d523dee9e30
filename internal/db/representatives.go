package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/civicpulse/internal/types"
)

// CreateRepresentative inserts a representative and returns its ID
func (db *DB) CreateRepresentative(ctx context.Context, rep *types.Representative) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO representatives (name, party, constituency, role, party_leader, active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		rep.Name, rep.Party, rep.Constituency, rep.Role, rep.PartyLeader, rep.Active,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create representative: %w", err)
	}
	return id, nil
}

// GetRepresentative retrieves a representative by ID
func (db *DB) GetRepresentative(ctx context.Context, repID uuid.UUID) (*types.Representative, error) {
	var rep types.Representative
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, party, constituency, role, party_leader, active
		 FROM representatives WHERE id = $1`,
		repID,
	).Scan(&rep.ID, &rep.Name, &rep.Party, &rep.Constituency, &rep.Role, &rep.PartyLeader, &rep.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUnknownRepresentative
		}
		return nil, fmt.Errorf("failed to get representative: %w", err)
	}
	return &rep, nil
}

// RepresentativeByName retrieves a representative by exact name, or nil
// when no such representative exists
func (db *DB) RepresentativeByName(ctx context.Context, name string) (*types.Representative, error) {
	var rep types.Representative
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, party, constituency, role, party_leader, active
		 FROM representatives WHERE name = $1`,
		name,
	).Scan(&rep.ID, &rep.Name, &rep.Party, &rep.Constituency, &rep.Role, &rep.PartyLeader, &rep.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get representative by name: %w", err)
	}
	return &rep, nil
}

// ActiveRepresentatives retrieves all representatives currently in office
func (db *DB) ActiveRepresentatives(ctx context.Context) ([]types.Representative, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, party, constituency, role, party_leader, active
		 FROM representatives WHERE active ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list representatives: %w", err)
	}
	defer rows.Close()

	var reps []types.Representative
	for rows.Next() {
		var rep types.Representative
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Party, &rep.Constituency, &rep.Role, &rep.PartyLeader, &rep.Active); err != nil {
			return nil, fmt.Errorf("failed to scan representative: %w", err)
		}
		reps = append(reps, rep)
	}
	return reps, nil
}
