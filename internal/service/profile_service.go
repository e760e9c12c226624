package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

// ErrProfileNotFound signals the caller to route the user to the setup flow.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileService interface {
	Create(ctx context.Context, userID string) (*model.UserProfile, error)
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	// Update applies only the supplied fields. Passes through
	// repository.ErrNoFieldsToUpdate when nothing updatable was supplied.
	Update(ctx context.Context, userID string, fields map[string]any) (*model.UserProfile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Create(ctx context.Context, userID string) (*model.UserProfile, error) {
	return s.profileRepo.CreateProfile(ctx, userID)
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	p, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID string, fields map[string]any) (*model.UserProfile, error) {
	p, err := s.profileRepo.UpdateProfile(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}
