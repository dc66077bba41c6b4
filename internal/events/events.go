// Package events provides the in-process signal bus the learning core uses
// to coordinate its profile-scoped components.
//
// Signals are the sole synchronization primitive between components: a
// profile switch or a ledger append is broadcast, and every subscriber
// re-derives its state from storage rather than reconciling incrementally.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Signal types broadcast across the core.
const (
	// SignalProfileChanged fires after the current profile changes.
	// Subscribers must discard in-memory state and re-hydrate from the
	// newly scoped storage keys.
	SignalProfileChanged = "profile.changed"

	// SignalActivityUpdated fires after the activity ledger changes.
	SignalActivityUpdated = "activity.updated"

	// SignalSRSChanged fires after the review item set mutates.
	SignalSRSChanged = "srs.changed"
)

// Signal is one broadcast on the bus. The payload is signal-specific data
// serialized as JSON, and may be empty.
type Signal struct {
	// ID is a unique identifier for this signal instance.
	ID uuid.UUID `json:"id"`

	// Type is one of the Signal* constants.
	Type string `json:"type"`

	// Payload contains signal-specific data serialized as JSON.
	Payload json.RawMessage `json:"payload,omitempty"`

	// OccurredAt is the timestamp when the signal was created.
	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the signal payload into the provided structure.
func (s *Signal) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(s.Payload, v)
}

// NewSignal creates a new Signal of the given type. A nil payload produces
// a signal with no payload.
func NewSignal(signalType string, payload interface{}) (*Signal, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Signal{
		ID:         uuid.New(),
		Type:       signalType,
		Payload:    raw,
		OccurredAt: time.Now(),
	}, nil
}

// Handler defines an interface for components that react to signals.
type Handler interface {
	// HandleSignal processes the given signal within the provided context.
	// Returns an error if the signal cannot be handled successfully.
	HandleSignal(ctx context.Context, sig *Signal) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, sig *Signal) error

// HandleSignal implements Handler.
func (f HandlerFunc) HandleSignal(ctx context.Context, sig *Signal) error {
	return f(ctx, sig)
}

// Publisher defines an interface for components that broadcast signals.
// Services publish without knowing which subscribers will react.
type Publisher interface {
	// Publish broadcasts the given signal to all matching subscribers.
	// Returns an error if any subscriber fails.
	Publish(ctx context.Context, sig *Signal) error
}
