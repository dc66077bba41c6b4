package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

func newActivityFixture(t *testing.T) (*ActivityHandler, *service.LedgerService) {
	t.Helper()
	ledger := service.NewLedgerService(store.NewInMemoryKV(), fixedScope{id: "p1"}, nil, nil)
	return NewActivityHandler(ledger, slog.Default()), ledger
}

func TestLogPlayEndpoint(t *testing.T) {
	t.Parallel() // Enable parallel execution
	handler, ledger := newActivityFixture(t)

	w := postJSON(t, handler.LogPlay, "/api/activity/play", LogPlayRequest{
		Text:    "你好",
		Dialect: "mandarin",
	})

	require.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())

	var ev domain.ActivityEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ev))
	assert.Equal(t, domain.EventAudioPlay, ev.Type)
	assert.Equal(t, "你好", ev.Text)
	assert.Equal(t, "mandarin", ev.Dialect)
	assert.NotZero(t, ev.T)

	evs := ledger.ReadEvents(context.Background())
	require.Len(t, evs, 1)
	assert.Equal(t, ev, evs[0])
}

func TestLogPlayEndpointRequiresText(t *testing.T) {
	t.Parallel() // Enable parallel execution
	handler, _ := newActivityFixture(t)

	w := postJSON(t, handler.LogPlay, "/api/activity/play", LogPlayRequest{Dialect: "mandarin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListActivityEndpoint(t *testing.T) {
	t.Parallel() // Enable parallel execution
	handler, ledger := newActivityFixture(t)
	ctx := context.Background()

	require.NoError(t, ledger.LogEvent(ctx, domain.NewAudioPlayEvent("一", "", 1000)))
	require.NoError(t, ledger.LogEvent(ctx, domain.NewAudioPlayEvent("二", "", 2000)))

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var evs []domain.ActivityEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &evs))
	require.Len(t, evs, 2)
	assert.Equal(t, "一", evs[0].Text)
	assert.Equal(t, "二", evs[1].Text)
}

func TestClearActivityEndpoint(t *testing.T) {
	t.Parallel() // Enable parallel execution
	handler, ledger := newActivityFixture(t)
	ctx := context.Background()

	require.NoError(t, ledger.LogEvent(ctx, domain.NewAudioPlayEvent("你好", "", 1000)))

	req := httptest.NewRequest(http.MethodDelete, "/api/activity", nil)
	w := httptest.NewRecorder()
	handler.Clear(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, ledger.ReadEvents(ctx))
}
