// Package task provides the background scheduling the learning core needs:
// a timer that fires at each local midnight so day-derived metrics (the
// streak window) roll forward even when the learner is idle.
package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RolloverFunc is invoked at each local midnight.
type RolloverFunc func(ctx context.Context)

// MidnightScheduler arms a one-shot timer for the next local midnight and
// re-arms it after every fire. It is intentionally not a ticker: the delay
// to the next midnight is recomputed each time, which keeps the schedule
// correct across daylight-saving transitions.
type MidnightScheduler struct {
	fn         RolloverFunc
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	started    bool
	mu         sync.Mutex
}

// NewMidnightScheduler creates a new scheduler invoking fn at each local
// midnight in the given location. A nil location defaults to time.Local.
func NewMidnightScheduler(fn RolloverFunc, loc *time.Location, logger *slog.Logger) *MidnightScheduler {
	if fn == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("fn cannot be nil for MidnightScheduler")
	}

	if loc == nil {
		loc = time.Local
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &MidnightScheduler{
		fn:         fn,
		loc:        loc,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "midnight_scheduler")),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the scheduling goroutine. Calling Start twice is a no-op.
func (s *MidnightScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	s.wg.Add(1)
	go s.run()
}

// Stop cancels the scheduler and waits for the goroutine to exit.
func (s *MidnightScheduler) Stop() {
	s.cancelFunc()
	s.wg.Wait()
}

func (s *MidnightScheduler) run() {
	defer s.wg.Done()

	for {
		delay := time.Until(nextMidnight(s.now().In(s.loc)))
		timer := time.NewTimer(delay)

		s.logger.Debug("armed midnight rollover", "fires_in", delay.String())

		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.logger.Debug("midnight rollover fired")
			s.fn(s.ctx)
		}
	}
}

// nextMidnight returns the first midnight strictly after now, in now's
// location.
func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
