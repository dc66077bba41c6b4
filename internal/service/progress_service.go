package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/events"
)

// ProgressService maintains the cached progress snapshot for the active
// profile. The snapshot is recomputed whenever a subscribed signal reports
// a mutation, and at each local midnight so the streak window rolls forward
// even with zero new activity.
type ProgressService struct {
	ledger *LedgerService
	srs    *SRSService
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot Progress
}

// Ensure ProgressService reacts to bus signals.
var _ events.Handler = (*ProgressService)(nil)

// NewProgressService creates a new ProgressService. Callers subscribe it to
// the profile-changed, activity-updated and srs-changed signals and arm the
// midnight scheduler with Recompute.
func NewProgressService(
	ledger *LedgerService,
	srsService *SRSService,
	logger *slog.Logger,
) *ProgressService {
	if ledger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("ledger cannot be nil for ProgressService")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srsService cannot be nil for ProgressService")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressService{
		ledger:   ledger,
		srs:      srsService,
		logger:   logger.With(slog.String("component", "progress_service")),
		now:      time.Now,
		snapshot: Progress{Level: LevelBeginner},
	}
}

// HandleSignal implements events.Handler by recomputing the snapshot.
func (s *ProgressService) HandleSignal(ctx context.Context, sig *events.Signal) error {
	switch sig.Type {
	case events.SignalProfileChanged, events.SignalActivityUpdated, events.SignalSRSChanged:
		s.Recompute(ctx)
	}
	return nil
}

// Recompute derives a fresh snapshot from the ledger and review set.
func (s *ProgressService) Recompute(ctx context.Context) {
	p := ComputeProgress(s.ledger.ReadEvents(ctx), s.srs.AllItems(ctx), s.now())

	s.mu.Lock()
	s.snapshot = p
	s.mu.Unlock()

	s.logger.Debug("progress recomputed",
		"words_learned", p.WordsLearned,
		"accuracy", p.Accuracy,
		"streak", p.Streak,
		"level", string(p.Level))
}

// Snapshot returns the most recently computed progress.
func (s *ProgressService) Snapshot() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
