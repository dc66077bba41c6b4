package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryBus is a simple implementation of the Publisher interface that
// keeps subscribers in memory and dispatches signals synchronously, in
// subscription order, on the publisher's goroutine.
type InMemoryBus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
	logger      *slog.Logger
}

// NewInMemoryBus creates a new instance of InMemoryBus.
func NewInMemoryBus(logger *slog.Logger) *InMemoryBus {
	if logger == nil {
		logger = slog.Default()
	}

	return &InMemoryBus{
		subscribers: make(map[string][]Handler),
		logger:      logger.With(slog.String("component", "in_memory_bus")),
	}
}

// Subscribe registers a handler for one or more signal types.
func (b *InMemoryBus) Subscribe(handler Handler, signalTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range signalTypes {
		b.subscribers[t] = append(b.subscribers[t], handler)
		b.logger.Debug("registered signal handler",
			"signal_type", t,
			"handler_count", len(b.subscribers[t]))
	}
}

// Publish broadcasts the given signal to all handlers subscribed to its
// type. If a handler returns an error, the signal is still delivered to the
// remaining handlers, and the first error encountered is returned.
func (b *InMemoryBus) Publish(ctx context.Context, sig *Signal) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subscribers[sig.Type]))
	copy(handlers, b.subscribers[sig.Type])
	b.mu.RUnlock()

	b.logger.Debug("publishing signal",
		"signal_id", sig.ID,
		"signal_type", sig.Type,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleSignal(ctx, sig); err != nil {
			b.logger.Error("handler failed to process signal",
				"error", err,
				"handler_index", i,
				"signal_id", sig.ID,
				"signal_type", sig.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
