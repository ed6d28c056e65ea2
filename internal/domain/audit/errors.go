package audit

import "errors"

var (
	// ErrInvalidInput indicates invalid audit input.
	ErrInvalidInput = errors.New("invalid audit input")
)
