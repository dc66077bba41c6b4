package api

import (
	"log/slog"
	"net/http"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
	"github.com/Harmony-cloud-01/mandarin-app/internal/domain"
	"github.com/Harmony-cloud-01/mandarin-app/internal/platform/logger"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service/auth"
)

// ProfileResponse represents the response data for a profile. The PIN hash
// never leaves the server; only the locked flag does.
type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	CreatedAt    int64  `json:"createdAt"`
	LastActiveAt int64  `json:"lastActiveAt"`
	Locked       bool   `json:"locked"`
}

// SessionResponse pairs a profile with the session token bound to it.
type SessionResponse struct {
	Profile ProfileResponse `json:"profile"`
	Token   string          `json:"token"`
}

// CreateProfileRequest represents the request body for creating a profile.
// A PIN is honored only when it is exactly 4 digits.
type CreateProfileRequest struct {
	Avatar string `json:"avatar" validate:"required,oneof=male female child"`
	Name   string `json:"name"   validate:"omitempty,max=64"`
	PIN    string `json:"pin"    validate:"omitempty,len=4,numeric"`
}

// SwitchProfileRequest represents the request body for switching profiles.
type SwitchProfileRequest struct {
	ID  string `json:"id"  validate:"required"`
	PIN string `json:"pin" validate:"omitempty,len=4"`
}

// ProfileHandler handles profile-related HTTP requests.
type ProfileHandler struct {
	profileService *service.ProfileService
	jwtService     auth.JWTService
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(
	profileService *service.ProfileService,
	jwtService auth.JWTService,
	log *slog.Logger,
) *ProfileHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}

	return &ProfileHandler{
		profileService: profileService,
		jwtService:     jwtService,
		logger:         log.With(slog.String("component", "profile_handler")),
	}
}

// List handles GET /profiles requests.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := h.profileService.LoadProfiles(r.Context())

	resp := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, profileToResponse(&profiles[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetCurrent handles GET /profiles/current requests.
// Responds 204 when no profile has been selected yet.
func (h *ProfileHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	profile := h.profileService.CurrentProfile(r.Context())
	if profile == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// Create handles POST /profiles requests. The new profile becomes current
// and the response carries a session token bound to it.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.CreateProfile(
		r.Context(),
		domain.AvatarKey(req.Avatar),
		req.Name,
		req.PIN,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), profile.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	log.Debug("profile created", slog.String("profile_id", profile.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{
		Profile: profileToResponse(profile),
		Token:   token,
	})
}

// Switch handles POST /profiles/switch requests: the profile switch with
// its PIN-challenge sub-flow. A wrong PIN yields an explicit error and
// leaves the current profile unchanged; the client may simply retry.
func (h *ProfileHandler) Switch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SwitchProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.SwitchProfile(r.Context(), req.ID, req.PIN)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), profile.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	log.Debug("profile switched", slog.String("profile_id", profile.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Profile: profileToResponse(profile),
		Token:   token,
	})
}

func profileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Avatar:       string(p.Avatar),
		CreatedAt:    p.CreatedAt,
		LastActiveAt: p.LastActiveAt,
		Locked:       p.Locked(),
	}
}
