// Package store defines the persistence interface for the learning core.
//
// The core deliberately persists through a small key/value contract rather
// than entity-shaped repositories: every profile-scoped structure (review
// items, activity log, preferences) is one JSON document under one scoped
// key, mirroring the storage model of the web client it shares data with.
package store

import "context"

// KV defines the interface for key/value persistence.
// Implementations decide durability guarantees; the core only depends on
// this interface, never on a specific storage technology.
type KV interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if no value is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key.
	// Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Base storage keys. Scoped keys are derived from these via ScopedKey;
// the profile registry and current-profile pointer stay unscoped because
// they describe the set of profiles itself.
const (
	// KeyReviewItems holds the map of review items by key.
	KeyReviewItems = "srs.items"

	// KeyActivityLog holds the append-only activity event list.
	KeyActivityLog = "activity.logs"

	// KeyReminderConfig holds the daily reminder settings.
	KeyReminderConfig = "daily.reminder.config"

	// KeySelectedDialects, KeyPlaybackRate and KeyPreferredVoice hold the
	// audio playback preferences.
	KeySelectedDialects = "dialect.selectedDialects"
	KeyPlaybackRate     = "dialect.playbackRate"
	KeyPreferredVoice   = "dialect.preferredVoice"

	// KeyUILanguage holds the interface language.
	KeyUILanguage = "ui.lang"

	// KeyProfileList holds the profile registry (unscoped).
	KeyProfileList = "profile.list"

	// KeyCurrentProfile holds the current profile id (unscoped).
	KeyCurrentProfile = "profile.current"
)

// ScopedKey namespaces a base key by profile id. An empty profile id
// returns the base key unchanged, which is how pre-profile legacy data
// was stored.
func ScopedKey(base, profileID string) string {
	if profileID == "" {
		return base
	}
	return base + "::" + profileID
}
