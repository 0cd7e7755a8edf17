package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID produces random RFC 4122 identifiers, used as request ids.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
