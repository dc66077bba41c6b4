// Package auth provides PIN hashing and profile session tokens.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a session token fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a session token has expired.
	ErrExpiredToken = errors.New("token expired")
)
