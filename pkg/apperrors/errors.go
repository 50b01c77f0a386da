// Package apperrors defines the sentinel errors shared across services and
// handlers. Services wrap these with context via fmt.Errorf("...: %w", ...)
// and handlers translate them to HTTP status codes with errors.Is, so no
// layer ever matches on error strings.
package apperrors

import "errors"

// Kind sentinels. Wrap these to attach detail, e.g.
// fmt.Errorf("%w: event %s", ErrNotFound, id).
var (
	// ErrNotFound covers missing events, schedules, seats, bookings and users.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest covers inactive events, wrong booking-type endpoints,
	// invalid status transitions and missing zone pricing without an override.
	ErrBadRequest = errors.New("bad request")

	// ErrConflict covers seats already reserved and duplicate assignments.
	// Handlers translate it into an HTTP 409 response.
	ErrConflict = errors.New("conflict")

	// ErrInternal is the generic fallback; details stay in the logs.
	ErrInternal = errors.New("internal error")
)
