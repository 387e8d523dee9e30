package types

import "github.com/google/uuid"

// Representative is an elected official tracked by the system.
type Representative struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Party        string    `json:"party"`
	Constituency string    `json:"constituency"`
	Role         string    `json:"role,omitempty"` // e.g. "Minister for Housing", "TD"
	PartyLeader  bool      `json:"party_leader,omitempty"`
	Active       bool      `json:"active"`
}
