package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"
	"app/internal/util"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "handler-test-secret"

type fakeGoogleAuthenticator struct {
	user *service.GoogleUser
	err  error
}

func (f *fakeGoogleAuthenticator) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f *fakeGoogleAuthenticator) Exchange(_ context.Context, code string) (*service.GoogleUser, error) {
	return f.user, f.err
}

type fakeUserService struct {
	user *model.User
	err  error
}

func (f *fakeUserService) SignIn(_ context.Context, gu *service.GoogleUser) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserService) Get(_ context.Context, id string) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserService) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserService) GetOverview(_ context.Context, id string) (*model.UserOverview, error) {
	return nil, errors.New("not implemented")
}

func newAuthHandler(google service.GoogleAuthenticator, users service.UserService) (*AuthHandler, *recordingActivityService) {
	activity := &recordingActivityService{}
	return NewAuthHandler(google, users, activity, testJWTSecret, time.Hour, zerolog.Nop()), activity
}

func TestLoginRedirectsWithStateCookie(t *testing.T) {
	h, _ := newAuthHandler(&fakeGoogleAuthenticator{}, &fakeUserService{})
	rr := httptest.NewRecorder()

	h.login(rr, httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)

	var state string
	for _, c := range rr.Result().Cookies() {
		if c.Name == stateCookieName {
			state = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	assert.NotEmpty(t, state, "state cookie not set")
	// The redirect must carry the same state the cookie holds.
	assert.Contains(t, rr.Header().Get("Location"), "state="+state)
}

func TestCallbackHappyPath(t *testing.T) {
	now := time.Now()
	google := &fakeGoogleAuthenticator{user: &service.GoogleUser{
		ID:    "google-123",
		Email: "alice@example.com",
		Name:  "Alice",
	}}
	users := &fakeUserService{user: &model.User{
		ID:          "user-1",
		Email:       "alice@example.com",
		Name:        "Alice",
		IsActive:    true,
		LastLoginAt: &now,
	}}
	h, activity := newAuthHandler(google, users)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=xyz&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rr := httptest.NewRecorder()
	h.callback(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.AuthTokenResponseDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.User.ID)

	// The issued token must round-trip through our own validation.
	claims, err := util.ValidateJWT(resp.Token, testJWTSecret)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)

	if assert.Len(t, activity.events, 1) {
		assert.Equal(t, "login", activity.events[0].Action)
		assert.Equal(t, "auth", activity.events[0].Category)
	}
}

func TestCallbackStateMismatch(t *testing.T) {
	h, _ := newAuthHandler(&fakeGoogleAuthenticator{}, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=evil&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rr := httptest.NewRecorder()
	h.callback(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCallbackMissingStateCookie(t *testing.T) {
	h, _ := newAuthHandler(&fakeGoogleAuthenticator{}, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=xyz&code=auth-code", nil)
	rr := httptest.NewRecorder()
	h.callback(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCallbackProviderError(t *testing.T) {
	h, _ := newAuthHandler(&fakeGoogleAuthenticator{}, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=xyz&error=access_denied", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rr := httptest.NewRecorder()
	h.callback(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCallbackExchangeFailure(t *testing.T) {
	google := &fakeGoogleAuthenticator{err: errors.New("invalid_grant")}
	h, _ := newAuthHandler(google, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=xyz&code=bad-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rr := httptest.NewRecorder()
	h.callback(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
