package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/domain/srs"
	"github.com/Harmony-cloud-01/mandarin-app/internal/events"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

// SRSService owns the review item set for the active profile. Items are
// held in memory, hydrated from the profile-scoped srs.items key, and
// persisted write-behind: the in-memory state is updated first and the
// storage write's failure is logged and swallowed.
//
// Corrupt stored data hydrates to an empty item set rather than failing.
type SRSService struct {
	kv        store.KV
	scope     ProfileScope
	ledger    *LedgerService
	scheduler srs.Service
	bus       events.Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	items       map[string]*domain.ReviewItem
	hydrated    bool
	hydratedFor string
}

// NewSRSService creates a new SRSService.
func NewSRSService(
	kv store.KV,
	scope ProfileScope,
	ledger *LedgerService,
	scheduler srs.Service,
	bus events.Publisher,
	logger *slog.Logger,
) *SRSService {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv cannot be nil for SRSService")
	}
	if scope == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scope cannot be nil for SRSService")
	}
	if scheduler == nil {
		scheduler = srs.NewDefaultService()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SRSService{
		kv:        kv,
		scope:     scope,
		ledger:    ledger,
		scheduler: scheduler,
		bus:       bus,
		logger:    logger.With(slog.String("component", "srs_service")),
		now:       time.Now,
		items:     make(map[string]*domain.ReviewItem),
	}
}

// HandleSignal implements events.Handler. On a profile change the in-memory
// item set is discarded; the next operation re-hydrates from the newly
// scoped storage key.
func (s *SRSService) HandleSignal(ctx context.Context, sig *events.Signal) error {
	if sig.Type != events.SignalProfileChanged {
		return nil
	}

	s.mu.Lock()
	s.hydrated = false
	s.items = make(map[string]*domain.ReviewItem)
	s.mu.Unlock()

	return nil
}

// AddItem adds the text to the review set. The key is derived from the type
// and text, and adding an existing key is a no-op that returns the existing
// item. The optional initial box (0 means default) seeds items the learner
// already partly knows, skipping the earliest review interval; it is
// clamped to the valid range.
//
// A successful add appends an srs.add event to the ledger.
func (s *SRSService) AddItem(
	ctx context.Context,
	text string,
	itemType domain.ItemType,
	initialBox int,
) (*domain.ReviewItem, error) {
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	if !domain.IsValidItemType(itemType) {
		return nil, domain.ErrInvalidItemType
	}

	if initialBox == 0 {
		initialBox = srs.MinBox
	}

	key := domain.ItemKey(itemType, text)
	now := s.now()

	s.mu.Lock()
	s.ensureHydratedLocked(ctx)

	if existing, ok := s.items[key]; ok {
		item := existing.Clone()
		s.mu.Unlock()
		return item, nil
	}

	item, err := s.scheduler.NewItem(text, itemType, initialBox, now)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.items[key] = item
	s.persistLocked(ctx)
	s.mu.Unlock()

	if s.ledger != nil {
		if err := s.ledger.LogEvent(ctx, domain.NewAddEvent(key, now.UnixMilli())); err != nil {
			s.logger.Warn("failed to log srs.add event", "error", err, "key", key)
		}
	}
	s.publishChanged(ctx)

	return item.Clone(), nil
}

// RemoveItem deletes the item unconditionally. A missing key is a no-op.
// Removal writes no ledger event.
func (s *SRSService) RemoveItem(ctx context.Context, key string) {
	s.mu.Lock()
	s.ensureHydratedLocked(ctx)

	if _, ok := s.items[key]; !ok {
		s.mu.Unlock()
		return
	}

	delete(s.items, key)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publishChanged(ctx)
}

// GradeItem applies a review grade to the item: the box transition, the
// recomputed due date, and the grade appended to the item's history. A
// missing key is a silent no-op returning (nil, nil).
//
// GradeItem does not write the srs.grade ledger event itself; the caller
// pairs it with LedgerService.LogEvent, as the review screen does.
func (s *SRSService) GradeItem(
	ctx context.Context,
	key string,
	grade domain.Grade,
) (*domain.ReviewItem, error) {
	if !domain.IsValidGrade(grade) {
		return nil, domain.ErrInvalidGrade
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureHydratedLocked(ctx)

	item, ok := s.items[key]
	if !ok {
		return nil, nil
	}

	updated, err := s.scheduler.Review(item, grade, s.now())
	if err != nil {
		return nil, err
	}

	s.items[key] = updated
	s.persistLocked(ctx)

	return updated.Clone(), nil
}

// DueItems returns the items whose due date has passed, soonest-overdue
// first. Due-ness is evaluated against the wall clock on every call, never
// cached.
func (s *SRSService) DueItems(ctx context.Context) []domain.ReviewItem {
	now := s.now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureHydratedLocked(ctx)

	due := make([]domain.ReviewItem, 0)
	for _, it := range s.items {
		if it.Due <= now {
			due = append(due, *it.Clone())
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].Due != due[j].Due {
			return due[i].Due < due[j].Due
		}
		return due[i].Key < due[j].Key
	})

	return due
}

// AllItems returns every item in insertion-chronological order.
func (s *SRSService) AllItems(ctx context.Context) []domain.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureHydratedLocked(ctx)

	all := make([]domain.ReviewItem, 0, len(s.items))
	for _, it := range s.items {
		all = append(all, *it.Clone())
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].AddedAt != all[j].AddedAt {
			return all[i].AddedAt < all[j].AddedAt
		}
		return all[i].Key < all[j].Key
	})

	return all
}

// ensureHydratedLocked loads the item set for the current profile if the
// in-memory state is missing or belongs to a different profile. The scoped
// key is re-derived on every call so a stale scope is never used.
func (s *SRSService) ensureHydratedLocked(ctx context.Context) {
	profileID := s.scope.CurrentProfileID(ctx)
	if s.hydrated && s.hydratedFor == profileID {
		return
	}

	s.items = make(map[string]*domain.ReviewItem)
	s.hydrated = true
	s.hydratedFor = profileID

	key := store.ScopedKey(store.KeyReviewItems, profileID)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return
	}

	var stored map[string]*domain.ReviewItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("corrupt review items, resetting to empty", "error", err, "key", key)
		return
	}

	for k, it := range stored {
		if it != nil {
			s.items[k] = it
		}
	}
}

// persistLocked writes the item set behind the in-memory update. Failures
// are logged and swallowed; the in-memory state stays authoritative for
// this session.
func (s *SRSService) persistLocked(ctx context.Context) {
	key := store.ScopedKey(store.KeyReviewItems, s.hydratedFor)

	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("failed to marshal review items", "error", err)
		return
	}

	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("failed to persist review items", "error", err, "key", key)
	}
}

func (s *SRSService) publishChanged(ctx context.Context) {
	if s.bus == nil {
		return
	}

	sig, err := events.NewSignal(events.SignalSRSChanged, nil)
	if err != nil {
		s.logger.Error("failed to build srs-changed signal", "error", err)
		return
	}

	if err := s.bus.Publish(ctx, sig); err != nil {
		s.logger.Warn("srs-changed handler failed", "error", err)
	}
}
