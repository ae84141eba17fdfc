package domain

import "errors"

var (
	// ErrValidation is returned before any network call when required
	// input is missing or out of range.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the remote lookup comes back empty.
	ErrNotFound = errors.New("not found")
	// ErrConflict is reserved for lost-update detection. The record store
	// offers no conditional writes, so nothing emits it today; the
	// taxonomy keeps room for it.
	ErrConflict = errors.New("conflict")
	// ErrTimeout is a store request that ran out of time, as opposed to
	// one that failed outright.
	ErrTimeout = errors.New("store timeout")
	// ErrUnavailable is any other transport or remote failure.
	ErrUnavailable = errors.New("store unavailable")
	// ErrMalformedData is a remote record broken beyond what field-level
	// normalization can absorb, e.g. a non-object response.
	ErrMalformedData = errors.New("malformed record")
)
