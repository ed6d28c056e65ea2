package booking

import "errors"

var (
	// ErrSlotNotFound indicates the requested slot doesn't exist.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotTaken indicates another application claimed the slot first.
	ErrSlotTaken = errors.New("slot no longer available")
	// ErrApplicationNotFound indicates the application doesn't exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrAlreadyScheduled indicates the application already has an interview.
	ErrAlreadyScheduled = errors.New("application already has an interview scheduled")
	// ErrInvalidInput indicates invalid booking input.
	ErrInvalidInput = errors.New("invalid booking input")
)
