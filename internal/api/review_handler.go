package api

import (
	"log/slog"
	"net/http"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/platform/logger"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
)

// AddItemRequest represents the request body for adding a review item.
// InitialBox seeds items the learner already partly knows; 0 means the
// default starting box.
type AddItemRequest struct {
	Text       string `json:"text"       validate:"required"`
	Type       string `json:"type"       validate:"required,oneof=word phrase character"`
	InitialBox int    `json:"initialBox" validate:"omitempty,gte=1,lte=5"`
}

// GradeItemRequest represents the request body for grading a review item.
// The item key travels in the body rather than the path because keys embed
// CJK text and a colon.
type GradeItemRequest struct {
	Key   string `json:"key"   validate:"required"`
	Grade string `json:"grade" validate:"required,oneof=again hard good easy"`
}

// ReviewHandler handles review-item HTTP requests.
type ReviewHandler struct {
	srsService *service.SRSService
	ledger     *service.LedgerService
	logger     *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	srsService *service.SRSService,
	ledger *service.LedgerService,
	log *slog.Logger,
) *ReviewHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		srsService: srsService,
		ledger:     ledger,
		logger:     log.With(slog.String("component", "review_handler")),
	}
}

// ListItems handles GET /review/items requests, returning every item in
// insertion order.
func (h *ReviewHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.srsService.AllItems(r.Context()))
}

// DueItems handles GET /review/due requests, returning the items currently
// eligible for review, soonest-overdue first.
func (h *ReviewHandler) DueItems(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.srsService.DueItems(r.Context()))
}

// AddItem handles POST /review/items requests. Adding an already-present
// key is idempotent: the existing item is returned unchanged.
func (h *ReviewHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.srsService.AddItem(r.Context(), req.Text, domain.ItemType(req.Type), req.InitialBox)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review item added", slog.String("key", item.Key))
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// RemoveItem handles DELETE /review/items?key=... requests. Removing an
// absent key is a no-op; the response is 204 either way.
func (h *ReviewHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing item key")
		return
	}

	h.srsService.RemoveItem(r.Context(), key)
	w.WriteHeader(http.StatusNoContent)
}

// GradeItem handles POST /review/grade requests. It pairs the scheduler
// update with the srs.grade ledger append; the engine itself does not log
// grades. Grading an absent key is a silent no-op answered with 204.
func (h *ReviewHandler) GradeItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GradeItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	grade := domain.Grade(req.Grade)
	item, err := h.srsService.GradeItem(r.Context(), req.Key, grade)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if item == nil {
		log.Debug("grade for absent item ignored", slog.String("key", req.Key))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.ledger.LogEvent(r.Context(), domain.NewGradeEvent(req.Key, grade, lastReviewMillis(item))); err != nil {
		log.Warn("failed to log grade event", "error", err, slog.String("key", req.Key))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// lastReviewMillis returns the timestamp of the item's most recent review,
// which for a just-graded item is the grading time.
func lastReviewMillis(item *domain.ReviewItem) int64 {
	if n := len(item.History); n > 0 {
		return item.History[n-1].T
	}
	return item.AddedAt
}
