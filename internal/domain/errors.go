// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAvatar is returned when an avatar is not one of the known variants.
	ErrInvalidAvatar = errors.New("invalid avatar")

	// ErrInvalidGrade is returned when a review grade is not valid.
	ErrInvalidGrade = errors.New("invalid review grade")

	// ErrInvalidItemType is returned when a review item type is not valid.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInvalidEventType is returned when an activity event type is not valid.
	ErrInvalidEventType = errors.New("invalid activity event type")

	// ErrEmptyText is returned when required learnable text is empty.
	ErrEmptyText = errors.New("text cannot be empty")
)
