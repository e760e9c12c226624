package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeProfileService struct {
	profile *model.UserProfile
	err     error

	lastFields map[string]any
}

func (f *fakeProfileService) Create(_ context.Context, userID string) (*model.UserProfile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) Get(_ context.Context, userID string) (*model.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, service.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfileService) Update(_ context.Context, userID string, fields map[string]any) (*model.UserProfile, error) {
	f.lastFields = fields
	if len(fields) == 0 {
		return nil, repository.ErrNoFieldsToUpdate
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, service.ErrProfileNotFound
	}
	return f.profile, nil
}

func newUserHandler(users service.UserService, profiles service.ProfileService) (*UserHandler, *recordingActivityService) {
	activity := &recordingActivityService{}
	v := validator.New(validator.WithRequiredStructEnabled())
	return NewUserHandler(users, profiles, activity, v, zerolog.Nop()), activity
}

func testProfile() *model.UserProfile {
	fullName := "Alice"
	return &model.UserProfile{
		ID:       "profile-1",
		UserID:   "user-1",
		FullName: &fullName,
		Timezone: "Asia/Kolkata",
		Language: "en",
	}
}

func TestGetMe(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		planType := "free"
		remaining := 40
		users := &overviewUserService{overview: &model.UserOverview{
			User:             model.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"},
			PlanType:         &planType,
			CreditsRemaining: &remaining,
		}}
		h, _ := newUserHandler(users, &fakeProfileService{})
		rr := httptest.NewRecorder()

		h.getMe(rr, authedRequest(http.MethodGet, "/users/me", ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.UserOverviewResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "user-1", resp.ID)
		if assert.NotNil(t, resp.CreditsRemaining) {
			assert.Equal(t, 40, *resp.CreditsRemaining)
		}
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		h, _ := newUserHandler(&overviewUserService{err: service.ErrUserNotFound}, &fakeProfileService{})
		rr := httptest.NewRecorder()

		h.getMe(rr, authedRequest(http.MethodGet, "/users/me", ""))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// overviewUserService is a UserService fake for the dashboard route.
type overviewUserService struct {
	overview *model.UserOverview
	err      error
}

func (f *overviewUserService) SignIn(_ context.Context, gu *service.GoogleUser) (*model.User, error) {
	return nil, f.err
}

func (f *overviewUserService) Get(_ context.Context, id string) (*model.User, error) {
	return nil, f.err
}

func (f *overviewUserService) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return nil, f.err
}

func (f *overviewUserService) GetOverview(_ context.Context, id string) (*model.UserOverview, error) {
	return f.overview, f.err
}

func TestGetProfile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, _ := newUserHandler(&fakeUserService{}, &fakeProfileService{profile: testProfile()})
		rr := httptest.NewRecorder()

		h.handleProfile(rr, authedRequest(http.MethodGet, "/users/me/profile", ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.ProfileResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "profile-1", resp.ID)
		assert.Equal(t, "Asia/Kolkata", resp.Timezone)
	})

	t.Run("missing profile is 404", func(t *testing.T) {
		h, _ := newUserHandler(&fakeUserService{}, &fakeProfileService{})
		rr := httptest.NewRecorder()

		h.handleProfile(rr, authedRequest(http.MethodGet, "/users/me/profile", ""))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("ok applies only supplied fields", func(t *testing.T) {
		profiles := &fakeProfileService{profile: testProfile()}
		h, activity := newUserHandler(&fakeUserService{}, profiles)
		rr := httptest.NewRecorder()

		h.handleProfile(rr, authedRequest(http.MethodPatch, "/users/me/profile",
			`{"full_name":"Alice B","user_type":"Student"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]any{"full_name": "Alice B", "user_type": "Student"}, profiles.lastFields)
		if assert.Len(t, activity.events, 1) {
			assert.Equal(t, "profile_updated", activity.events[0].Action)
		}
	})

	t.Run("empty body is a bad request", func(t *testing.T) {
		h, activity := newUserHandler(&fakeUserService{}, &fakeProfileService{profile: testProfile()})
		rr := httptest.NewRecorder()

		h.handleProfile(rr, authedRequest(http.MethodPatch, "/users/me/profile", `{}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, activity.events)
	})

	t.Run("invalid user type fails validation", func(t *testing.T) {
		profiles := &fakeProfileService{profile: testProfile()}
		h, _ := newUserHandler(&fakeUserService{}, profiles)
		rr := httptest.NewRecorder()

		h.handleProfile(rr, authedRequest(http.MethodPatch, "/users/me/profile", `{"user_type":"Wizard"}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, profiles.lastFields)
	})

	t.Run("delete is not allowed", func(t *testing.T) {
		h, _ := newUserHandler(&fakeUserService{}, &fakeProfileService{profile: testProfile()})
		rr := httptest.NewRecorder()

		h.handleProfile(rr, authedRequest(http.MethodDelete, "/users/me/profile", ""))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
