package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/events"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

// ProfileScope yields the storage scope of the active profile. It is
// consulted on every read and write so a profile switch is picked up
// immediately, without any cached scoped keys going stale.
type ProfileScope interface {
	// CurrentProfileID returns the active profile id, or "" when no
	// profile has been selected yet.
	CurrentProfileID(ctx context.Context) string
}

// LedgerService is the append-only log of learner activity. It is the sole
// source of truth for derived analytics; events are immutable once
// appended, and the only bulk mutation is a full wipe.
//
// Storage failures never propagate: a ledger that cannot be read is an
// empty ledger, and a failed append is logged and dropped.
type LedgerService struct {
	kv     store.KV
	scope  ProfileScope
	bus    events.Publisher
	logger *slog.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	kv store.KV,
	scope ProfileScope,
	bus events.Publisher,
	logger *slog.Logger,
) *LedgerService {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv cannot be nil for LedgerService")
	}
	if scope == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scope cannot be nil for LedgerService")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LedgerService{
		kv:     kv,
		scope:  scope,
		bus:    bus,
		logger: logger.With(slog.String("component", "ledger_service")),
	}
}

// LogEvent appends an event to the current profile's ledger and broadcasts
// the activity-updated signal. Returns an error only when the event itself
// is invalid; storage failures are swallowed.
func (s *LedgerService) LogEvent(ctx context.Context, ev domain.ActivityEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	key := s.key(ctx)
	evs := s.read(ctx, key)
	evs = append(evs, ev)

	data, err := json.Marshal(evs)
	if err != nil {
		s.logger.Error("failed to marshal activity log", "error", err)
		return nil
	}

	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("failed to persist activity log", "error", err, "key", key)
	}

	s.publish(ctx, ev)
	return nil
}

// ReadEvents returns the full ordered ledger for the current profile scope.
// Missing or corrupt data reads as an empty ledger.
func (s *LedgerService) ReadEvents(ctx context.Context) []domain.ActivityEvent {
	return s.read(ctx, s.key(ctx))
}

// ClearEvents wipes the ledger for the current profile scope and broadcasts
// the activity-updated signal.
func (s *LedgerService) ClearEvents(ctx context.Context) {
	key := s.key(ctx)
	if err := s.kv.Remove(ctx, key); err != nil {
		s.logger.Warn("failed to clear activity log", "error", err, "key", key)
	}

	s.publish(ctx, nil)
}

func (s *LedgerService) key(ctx context.Context) string {
	return store.ScopedKey(store.KeyActivityLog, s.scope.CurrentProfileID(ctx))
}

func (s *LedgerService) read(ctx context.Context, key string) []domain.ActivityEvent {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return []domain.ActivityEvent{}
	}

	var evs []domain.ActivityEvent
	if err := json.Unmarshal([]byte(raw), &evs); err != nil {
		s.logger.Warn("corrupt activity log, treating as empty", "error", err, "key", key)
		return []domain.ActivityEvent{}
	}

	return evs
}

func (s *LedgerService) publish(ctx context.Context, payload interface{}) {
	if s.bus == nil {
		return
	}

	sig, err := events.NewSignal(events.SignalActivityUpdated, payload)
	if err != nil {
		s.logger.Error("failed to build activity signal", "error", err)
		return
	}

	if err := s.bus.Publish(ctx, sig); err != nil {
		s.logger.Warn("activity signal handler failed", "error", err)
	}
}
