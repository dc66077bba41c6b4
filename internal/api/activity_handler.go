package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
)

// LogPlayRequest represents the request body for recording an audio
// playback. Play events are the only ledger entries the client writes
// directly; srs.add and srs.grade entries come from the review endpoints.
type LogPlayRequest struct {
	Text    string `json:"text"    validate:"required"`
	Dialect string `json:"dialect" validate:"omitempty,max=32"`
}

// ActivityHandler handles activity-ledger HTTP requests.
type ActivityHandler struct {
	ledger *service.LedgerService
	logger *slog.Logger
	now    func() time.Time
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(ledger *service.LedgerService, log *slog.Logger) *ActivityHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ActivityHandler")
	}

	return &ActivityHandler{
		ledger: ledger,
		logger: log.With(slog.String("component", "activity_handler")),
		now:    time.Now,
	}
}

// List handles GET /activity requests, returning the full ordered ledger
// for the current profile.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.ledger.ReadEvents(r.Context()))
}

// LogPlay handles POST /activity/play requests.
func (h *ActivityHandler) LogPlay(w http.ResponseWriter, r *http.Request) {
	var req LogPlayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ev := domain.NewAudioPlayEvent(req.Text, req.Dialect, h.now().UnixMilli())
	if err := h.ledger.LogEvent(r.Context(), ev); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ev)
}

// Clear handles DELETE /activity requests: the explicit bulk wipe of the
// current profile's ledger.
func (h *ActivityHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.ledger.ClearEvents(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
