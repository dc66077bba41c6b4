package api

import (
	"log/slog"
	"net/http"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
)

// ProgressHandler serves the read-only progress snapshot.
type ProgressHandler struct {
	progress *service.ProgressService
	logger   *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progress *service.ProgressService, log *slog.Logger) *ProgressHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progress: progress,
		logger:   log.With(slog.String("component", "progress_handler")),
	}
}

// Get handles GET /progress requests.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.progress.Snapshot())
}
