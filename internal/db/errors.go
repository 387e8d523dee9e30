package db

import "errors"

// ErrVersionConflict is returned when a rating record write-back observes a
// version other than the one it read. Callers re-read and retry.
var ErrVersionConflict = errors.New("rating record version conflict")

// ErrUnknownRepresentative is returned for lookups against an identity the
// store has never seen.
var ErrUnknownRepresentative = errors.New("unknown representative")
