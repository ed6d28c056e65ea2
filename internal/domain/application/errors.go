package application

import "errors"

var (
	// ErrApplicationNotFound indicates the application doesn't exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrDuplicateChild indicates the family already submitted for this child.
	ErrDuplicateChild = errors.New("application already exists for this child")
	// ErrInvalidStatus indicates an unrecognized status value.
	ErrInvalidStatus = errors.New("unrecognized application status")
	// ErrAlreadyScheduled indicates the application already holds an interview.
	ErrAlreadyScheduled = errors.New("application already has an interview scheduled")
	// ErrInvalidInput indicates invalid application input.
	ErrInvalidInput = errors.New("invalid application input")
)
