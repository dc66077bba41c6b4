package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
)

// ReminderResponse pairs the stored reminder settings with the next time
// they would fire, saving the client the weekday arithmetic.
type ReminderResponse struct {
	Config domain.ReminderConfig `json:"config"`
	NextAt *time.Time            `json:"nextAt,omitempty"`
}

// SetLanguageRequest represents the request body for setting the UI language.
type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,max=16"`
}

// PrefsHandler handles per-profile preference HTTP requests.
type PrefsHandler struct {
	prefs  *service.PrefsService
	logger *slog.Logger
	now    func() time.Time
}

// NewPrefsHandler creates a new PrefsHandler.
func NewPrefsHandler(prefs *service.PrefsService, log *slog.Logger) *PrefsHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PrefsHandler")
	}

	return &PrefsHandler{
		prefs:  prefs,
		logger: log.With(slog.String("component", "prefs_handler")),
		now:    time.Now,
	}
}

// GetReminder handles GET /prefs/reminder requests.
func (h *PrefsHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	cfg := h.prefs.ReminderConfig(r.Context())

	resp := ReminderResponse{Config: cfg}
	if cfg.Enabled {
		next := cfg.NextOccurrence(h.now())
		resp.NextAt = &next
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SetReminder handles PUT /prefs/reminder requests.
func (h *PrefsHandler) SetReminder(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ReminderConfig
	if !decodeAndValidate(w, r, &cfg) {
		return
	}

	if err := h.prefs.SetReminderConfig(r.Context(), cfg); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.GetReminder(w, r)
}

// GetDialect handles GET /prefs/dialect requests.
func (h *PrefsHandler) GetDialect(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.prefs.DialectPrefs(r.Context()))
}

// SetDialect handles PUT /prefs/dialect requests.
func (h *PrefsHandler) SetDialect(w http.ResponseWriter, r *http.Request) {
	var prefs domain.DialectPrefs
	if !decodeAndValidate(w, r, &prefs) {
		return
	}

	if err := h.prefs.SetDialectPrefs(r.Context(), prefs); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.prefs.DialectPrefs(r.Context()))
}

// GetLanguage handles GET /prefs/language requests.
func (h *PrefsHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"language": h.prefs.UILanguage(r.Context()),
	})
}

// SetLanguage handles PUT /prefs/language requests.
func (h *PrefsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.prefs.SetUILanguage(r.Context(), req.Language)
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"language": req.Language})
}
