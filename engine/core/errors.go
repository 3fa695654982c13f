package core

import (
	"errors"
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound is returned by strict lookups on a missing id.
	ErrNotFound     = errors.New("not found")
)
