package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
)

// UserService handles user registration and profile updates. Identity is
// owned by the external verifier; this layer only stores the profile
// document keyed by the verified uid.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser registers the uid on first login. Fails when the uid already
// has a User document.
func (s *UserService) CreateUser(ctx context.Context, userID string, req model.CreateUserRequest) (*model.User, error) {
	_, err := s.userRepo.FindByID(ctx, userID)
	if err == nil {
		return nil, fmt.Errorf("%w: user with email already exists", apperr.ErrInvalidRequest)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	now := time.Now().Unix()
	user := &model.User{
		UserID:            userID,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		NotificationToken: req.Token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser fetches the caller's profile
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: user does not exist", apperr.ErrNotFound)
	}
	return user, err
}

// UpdateToken stores a new push notification token on the caller's profile
func (s *UserService) UpdateToken(ctx context.Context, userID, token string) (*model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", apperr.ErrNotFound, userID)
		}
		return nil, err
	}
	if err := s.userRepo.UpdateToken(ctx, userID, token, time.Now().Unix()); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateAvatar stores the uploaded avatar URL on the caller's profile
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", apperr.ErrNotFound, userID)
		}
		return nil, err
	}
	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL, time.Now().Unix()); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}
