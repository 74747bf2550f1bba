package yard

import "errors"

// Failure kinds reported by yard operations. Callers match with errors.Is;
// every operation either applies all of its effects or none of them.
var (
	// ErrInvalidTransition means the vehicle's current status does not
	// match the required source state of the requested transition.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDockUnavailable means the target dock is occupied or under maintenance.
	ErrDockUnavailable = errors.New("dock unavailable")

	// ErrValidation means a required input is missing or out of range.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced vehicle or supplier does not exist.
	ErrNotFound = errors.New("not found")
)
