package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Command lines that do not parse and strings with symbols outside
	// the configured alphabet are reported with this error.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown index strategy or store backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreClosed indicates the record store has been closed.
	ErrStoreClosed = errors.New("store closed")
)
