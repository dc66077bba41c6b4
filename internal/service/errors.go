package service

import "errors"

// Common service-level errors.
var (
	// ErrProfileNotFound is returned when a profile id is not in the registry.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrPINRequired is returned when switching to a locked profile
	// without supplying a PIN.
	ErrPINRequired = errors.New("PIN required")

	// ErrIncorrectPIN is returned when the supplied PIN does not match the
	// target profile's stored hash. The switch is aborted and may be
	// retried; no lockout is enforced.
	ErrIncorrectPIN = errors.New("incorrect PIN")

	// ErrNoCurrentProfile is returned when an operation needs an active
	// profile but none has been selected yet.
	ErrNoCurrentProfile = errors.New("no current profile")
)
