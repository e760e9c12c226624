package handler

import (
	"net/http"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"
	"app/internal/util"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

const stateCookieName = "oauth_state"

// AuthHandler runs the Google sign-in flow and issues session tokens.
type AuthHandler struct {
	google      service.GoogleAuthenticator
	userService service.UserService
	activity    service.ActivityService
	jwtSecret   string
	sessionTTL  time.Duration
	logger      zerolog.Logger
}

func NewAuthHandler(google service.GoogleAuthenticator, userService service.UserService, activity service.ActivityService, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		google:      google,
		userService: userService,
		activity:    activity,
		jwtSecret:   jwtSecret,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// RegisterRoutes mounts v1 auth routes. These are the only unauthenticated
// routes besides /health.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/google/login", h.login)
	mux.HandleFunc("/auth/google/callback", h.callback)
}

// login godoc
// @Summary Start the Google sign-in flow
// @Description Sets a single-use state cookie and redirects to the Google consent page.
// @Tags auth
// @Success 307 {string} string "redirect to Google"
// @Router /auth/google/login [get]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// callback godoc
// @Summary Complete the Google sign-in flow
// @Description Exchanges the authorization code, upserts the user and returns a bearer session token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthTokenResponseDTO
// @Failure 400 {object} handler.ErrorResponse "missing or mismatched state or code"
// @Failure 401 {object} handler.ErrorResponse "authorization denied"
// @Failure 500 {object} handler.ErrorResponse "sign-in failed"
// @Router /auth/google/callback [get]
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn().Msg("OAuth callback with missing or mismatched state")
		writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		writeError(w, http.StatusUnauthorized, "authorization denied: "+errParam)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing oauth code")
		return
	}

	gu, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Msg("Google code exchange failed")
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	user, err := h.userService.SignIn(r.Context(), gu)
	if err != nil {
		h.logger.Error().Err(err).Str("email", gu.Email).Msg("Failed to upsert user on sign-in")
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	token, err := util.GenerateJWT(user.ID, user.Email, h.jwtSecret, h.sessionTTL)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session token")
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	h.activity.Record(r.Context(), service.ActivityEvent{
		UserID:      user.ID,
		Action:      "login",
		Category:    "auth",
		Description: "Signed in with Google",
		IPAddress:   clientIP(r),
		UserAgent:   r.UserAgent(),
	})

	writeJSON(w, http.StatusOK, dto.AuthTokenResponseDTO{
		Token: token,
		User:  toUserResponse(user),
	})
}

func toUserResponse(u *model.User) dto.UserResponseDTO {
	return dto.UserResponseDTO{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}
