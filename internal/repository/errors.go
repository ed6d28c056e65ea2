package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a guarded update or delete matches no rows
	ErrConflict = errors.New("conflict: entity state changed under another request")

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errors.New("duplicate entity")
)
