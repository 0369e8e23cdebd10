package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicate signals a uniqueness-constraint violation.
	ErrDuplicate = errors.New("duplicate")
	// ErrCapacityExceeded signals a list at its maximum size.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
