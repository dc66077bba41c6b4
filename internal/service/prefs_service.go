package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

// Prefs validation errors.
var (
	// ErrInvalidReminderTime is returned when reminder hour/minute are out
	// of range.
	ErrInvalidReminderTime = errors.New("invalid reminder time")

	// ErrInvalidReminderDay is returned when a reminder weekday is outside 0..6.
	ErrInvalidReminderDay = errors.New("invalid reminder weekday")

	// ErrInvalidPlaybackRate is returned when the playback rate is not positive.
	ErrInvalidPlaybackRate = errors.New("playback rate must be positive")
)

// defaultUILanguage applies until the learner picks an interface language.
const defaultUILanguage = "en"

// PrefsService stores per-profile preferences: the daily reminder
// configuration, audio playback settings, and the interface language.
// Like every scoped service, it re-derives its keys from the current
// profile on each call; missing or corrupt values read as defaults.
type PrefsService struct {
	kv     store.KV
	scope  ProfileScope
	logger *slog.Logger
}

// NewPrefsService creates a new PrefsService.
func NewPrefsService(kv store.KV, scope ProfileScope, logger *slog.Logger) *PrefsService {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv cannot be nil for PrefsService")
	}
	if scope == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scope cannot be nil for PrefsService")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PrefsService{
		kv:     kv,
		scope:  scope,
		logger: logger.With(slog.String("component", "prefs_service")),
	}
}

// ReminderConfig returns the current profile's reminder settings, or the
// defaults when none are stored.
func (s *PrefsService) ReminderConfig(ctx context.Context) domain.ReminderConfig {
	key := s.scoped(ctx, store.KeyReminderConfig)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return domain.DefaultReminderConfig()
	}

	var cfg domain.ReminderConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Warn("corrupt reminder config, using defaults", "error", err, "key", key)
		return domain.DefaultReminderConfig()
	}

	return cfg
}

// SetReminderConfig validates and stores the reminder settings.
func (s *PrefsService) SetReminderConfig(ctx context.Context, cfg domain.ReminderConfig) error {
	if cfg.Hour < 0 || cfg.Hour > 23 || cfg.Minute < 0 || cfg.Minute > 59 {
		return ErrInvalidReminderTime
	}
	for _, d := range cfg.Days {
		if d < 0 || d > 6 {
			return ErrInvalidReminderDay
		}
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		s.logger.Error("failed to marshal reminder config", "error", err)
		return nil
	}

	if err := s.kv.Set(ctx, s.scoped(ctx, store.KeyReminderConfig), string(data)); err != nil {
		s.logger.Warn("failed to persist reminder config", "error", err)
	}

	return nil
}

// DialectPrefs returns the current profile's playback preferences. Each
// field lives under its own storage key, matching the legacy layout the
// migration copies.
func (s *PrefsService) DialectPrefs(ctx context.Context) domain.DialectPrefs {
	prefs := domain.DefaultDialectPrefs()

	if raw, err := s.kv.Get(ctx, s.scoped(ctx, store.KeySelectedDialects)); err == nil {
		var dialects []string
		if err := json.Unmarshal([]byte(raw), &dialects); err == nil {
			prefs.SelectedDialects = dialects
		} else {
			s.logger.Warn("corrupt dialect selection, using defaults", "error", err)
		}
	}

	if raw, err := s.kv.Get(ctx, s.scoped(ctx, store.KeyPlaybackRate)); err == nil {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate > 0 {
			prefs.PlaybackRate = rate
		}
	}

	if raw, err := s.kv.Get(ctx, s.scoped(ctx, store.KeyPreferredVoice)); err == nil {
		prefs.PreferredVoice = raw
	}

	return prefs
}

// SetDialectPrefs validates and stores the playback preferences.
func (s *PrefsService) SetDialectPrefs(ctx context.Context, prefs domain.DialectPrefs) error {
	if prefs.PlaybackRate <= 0 {
		return ErrInvalidPlaybackRate
	}

	if data, err := json.Marshal(prefs.SelectedDialects); err == nil {
		if err := s.kv.Set(ctx, s.scoped(ctx, store.KeySelectedDialects), string(data)); err != nil {
			s.logger.Warn("failed to persist dialect selection", "error", err)
		}
	}

	rate := strconv.FormatFloat(prefs.PlaybackRate, 'f', -1, 64)
	if err := s.kv.Set(ctx, s.scoped(ctx, store.KeyPlaybackRate), rate); err != nil {
		s.logger.Warn("failed to persist playback rate", "error", err)
	}

	voiceKey := s.scoped(ctx, store.KeyPreferredVoice)
	if prefs.PreferredVoice == "" {
		if err := s.kv.Remove(ctx, voiceKey); err != nil {
			s.logger.Warn("failed to clear preferred voice", "error", err)
		}
	} else if err := s.kv.Set(ctx, voiceKey, prefs.PreferredVoice); err != nil {
		s.logger.Warn("failed to persist preferred voice", "error", err)
	}

	return nil
}

// UILanguage returns the current profile's interface language.
func (s *PrefsService) UILanguage(ctx context.Context) string {
	raw, err := s.kv.Get(ctx, s.scoped(ctx, store.KeyUILanguage))
	if err != nil || raw == "" {
		return defaultUILanguage
	}
	return raw
}

// SetUILanguage stores the interface language.
func (s *PrefsService) SetUILanguage(ctx context.Context, lang string) {
	if err := s.kv.Set(ctx, s.scoped(ctx, store.KeyUILanguage), lang); err != nil {
		s.logger.Warn("failed to persist UI language", "error", err)
	}
}

func (s *PrefsService) scoped(ctx context.Context, base string) string {
	return store.ScopedKey(base, s.scope.CurrentProfileID(ctx))
}
