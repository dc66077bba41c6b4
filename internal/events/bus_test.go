package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignal(t *testing.T) {
	t.Parallel() // Enable parallel execution

	sig, err := NewSignal(SignalProfileChanged, map[string]string{"profileId": "p1"})
	require.NoError(t, err, "Failed to create signal")

	assert.Equal(t, SignalProfileChanged, sig.Type)
	assert.NotEmpty(t, sig.ID)
	assert.False(t, sig.OccurredAt.IsZero())

	var payload struct {
		ProfileID string `json:"profileId"`
	}
	require.NoError(t, sig.UnmarshalPayload(&payload))
	assert.Equal(t, "p1", payload.ProfileID)
}

func TestBusDeliversOnlySubscribedTypes(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	bus := NewInMemoryBus(nil)

	var got []string
	bus.Subscribe(HandlerFunc(func(ctx context.Context, sig *Signal) error {
		got = append(got, sig.Type)
		return nil
	}), SignalProfileChanged, SignalSRSChanged)

	for _, typ := range []string{SignalProfileChanged, SignalActivityUpdated, SignalSRSChanged} {
		sig, err := NewSignal(typ, nil)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, sig))
	}

	assert.Equal(t, []string{SignalProfileChanged, SignalSRSChanged}, got)
}

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	bus := NewInMemoryBus(nil)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		bus.Subscribe(HandlerFunc(func(ctx context.Context, sig *Signal) error {
			order = append(order, i)
			return nil
		}), SignalActivityUpdated)
	}

	sig, err := NewSignal(SignalActivityUpdated, nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, sig))

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestBusContinuesAfterHandlerError(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	bus := NewInMemoryBus(nil)

	handlerErr := errors.New("handler broke")
	secondRan := false

	bus.Subscribe(HandlerFunc(func(ctx context.Context, sig *Signal) error {
		return handlerErr
	}), SignalSRSChanged)
	bus.Subscribe(HandlerFunc(func(ctx context.Context, sig *Signal) error {
		secondRan = true
		return nil
	}), SignalSRSChanged)

	sig, err := NewSignal(SignalSRSChanged, nil)
	require.NoError(t, err)

	err = bus.Publish(ctx, sig)
	assert.ErrorIs(t, err, handlerErr, "Expected the first handler error back")
	assert.True(t, secondRan, "Later handlers must still run")
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	t.Parallel() // Enable parallel execution

	bus := NewInMemoryBus(nil)
	sig, err := NewSignal(SignalProfileChanged, nil)
	require.NoError(t, err)

	assert.NoError(t, bus.Publish(context.Background(), sig))
}
