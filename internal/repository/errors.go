package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a write's expected version does not
	// match the stored version.
	ErrVersionConflict = errors.New("version conflict")
)
