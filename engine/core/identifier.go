package core

import "github.com/google/uuid"

// NewIdentifier returns a fresh random id for entries the caller does not
// want to name.
func NewIdentifier() string {
	return uuid.NewString()
}
