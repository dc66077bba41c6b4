package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrKeyNotFound is returned when no value is stored under the
	// requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnavailable is returned when the underlying storage cannot be
	// reached. Callers in the learning core treat this the same as an
	// empty value rather than propagating it to the UI.
	ErrUnavailable = errors.New("storage unavailable")
)
