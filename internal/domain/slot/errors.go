package slot

import "errors"

var (
	// ErrSlotNotFound indicates the slot doesn't exist.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotBooked indicates the slot is booked and cannot be deleted.
	ErrSlotBooked = errors.New("slot is booked")
	// ErrSlotNotBooked indicates a release was requested for a free slot.
	ErrSlotNotBooked = errors.New("slot is not booked")
	// ErrInvalidInput indicates invalid slot input.
	ErrInvalidInput = errors.New("invalid slot input")
)
