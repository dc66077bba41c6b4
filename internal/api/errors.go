package api

import (
	"errors"
	"net/http"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// PIN challenge errors: the switch flow stays open for retry.
	case errors.Is(err, service.ErrPINRequired),
		errors.Is(err, service.ErrIncorrectPIN):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAvatar),
		errors.Is(err, domain.ErrInvalidGrade),
		errors.Is(err, domain.ErrInvalidItemType),
		errors.Is(err, domain.ErrInvalidEventType),
		errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, domain.ErrProfileNameEmpty),
		errors.Is(err, service.ErrInvalidReminderTime),
		errors.Is(err, service.ErrInvalidReminderDay),
		errors.Is(err, service.ErrInvalidPlaybackRate):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrNoCurrentProfile):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, service.ErrPINRequired):
		return "This profile is locked; a PIN is required"

	case errors.Is(err, service.ErrIncorrectPIN):
		return "Incorrect PIN. Please try again."

	case errors.Is(err, service.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, service.ErrNoCurrentProfile):
		return "No profile selected"

	case errors.Is(err, domain.ErrInvalidAvatar):
		return "Invalid avatar"

	case errors.Is(err, domain.ErrInvalidGrade):
		return "Invalid review grade"

	case errors.Is(err, domain.ErrInvalidItemType):
		return "Invalid item type"

	case errors.Is(err, domain.ErrInvalidEventType):
		return "Invalid activity event"

	case errors.Is(err, domain.ErrEmptyText):
		return "Text cannot be empty"

	case errors.Is(err, service.ErrInvalidReminderTime),
		errors.Is(err, service.ErrInvalidReminderDay):
		return "Invalid reminder settings"

	case errors.Is(err, service.ErrInvalidPlaybackRate):
		return "Invalid playback rate"

	default:
		return "An unexpected error occurred"
	}
}
