package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	// SignIn upserts a user from a verified Google identity: existing users
	// get name/image/last-login refreshed, new users are created together
	// with their empty profile and default free subscription.
	SignIn(ctx context.Context, gu *GoogleUser) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetOverview(ctx context.Context, id string) (*model.UserOverview, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) SignIn(ctx context.Context, gu *GoogleUser) (*model.User, error) {
	var image *string
	if gu.Picture != "" {
		image = &gu.Picture
	}
	return s.userRepo.CreateOrUpdateUser(ctx, gu.Email, gu.Name, image, gu.ID)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) GetOverview(ctx context.Context, id string) (*model.UserOverview, error) {
	o, err := s.userRepo.GetUserOverview(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrUserNotFound
	}
	return o, nil
}
