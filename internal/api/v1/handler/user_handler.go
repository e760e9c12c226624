package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService    service.UserService
	profileService service.ProfileService
	activity       service.ActivityService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewUserHandler(userService service.UserService, profileService service.ProfileService, activity service.ActivityService, v *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService:    userService,
		profileService: profileService,
		activity:       activity,
		validate:       v,
		logger:         logger,
	}
}

// RegisterRoutes mounts v1 user routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me", authMw(http.HandlerFunc(h.getMe)))
	mux.Handle("/users/me/profile", authMw(http.HandlerFunc(h.handleProfile)))
}

// getMe godoc
// @Summary Get the signed-in user's dashboard view
// @Description Returns the user joined with profile and subscription data.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserOverviewResponseDTO
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) getMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return
	}

	overview, err := h.userService.GetOverview(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user overview")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toOverviewResponse(overview))
}

func (h *UserHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r)
	case http.MethodPatch:
		h.updateProfile(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// getProfile godoc
// @Summary Get the signed-in user's profile
// @Description A 404 means the profile does not exist yet and the client should route to the setup flow.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ProfileResponseDTO
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me/profile [get]
func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return
	}

	profile, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch profile")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// updateProfile godoc
// @Summary Update the signed-in user's profile
// @Description Applies only the fields present in the body. An empty body is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.ProfileUpdateDTO true "Fields to update"
// @Success 200 {object} dto.ProfileResponseDTO
// @Failure 400 {object} handler.ErrorResponse "invalid payload or no fields to update"
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me/profile [patch]
func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return
	}

	var req dto.ProfileUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, req.Fields())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			writeError(w, http.StatusBadRequest, "no fields to update")
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile not found")
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.activity.Record(r.Context(), service.ActivityEvent{
		UserID:      userID,
		Action:      "profile_updated",
		Category:    "profile",
		Description: "Profile updated",
		Metadata:    req.Fields(),
		IPAddress:   clientIP(r),
		UserAgent:   r.UserAgent(),
	})

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(p *model.UserProfile) dto.ProfileResponseDTO {
	return dto.ProfileResponseDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		FullName:     p.FullName,
		Phone:        p.Phone,
		UserType:     p.UserType,
		Organization: p.Organization,
		Designation:  p.Designation,
		Bio:          p.Bio,
		Location:     p.Location,
		Timezone:     p.Timezone,
		Language:     p.Language,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toOverviewResponse(o *model.UserOverview) dto.UserOverviewResponseDTO {
	return dto.UserOverviewResponseDTO{
		UserResponseDTO:    toUserResponse(&o.User),
		FullName:           o.FullName,
		Phone:              o.Phone,
		UserType:           o.UserType,
		Organization:       o.Organization,
		Designation:        o.Designation,
		Bio:                o.Bio,
		Location:           o.Location,
		PlanType:           o.PlanType,
		PlanName:           o.PlanName,
		CreditsTotal:       o.CreditsTotal,
		CreditsUsed:        o.CreditsUsed,
		CreditsRemaining:   o.CreditsRemaining,
		SubscriptionStatus: o.SubscriptionStatus,
	}
}
