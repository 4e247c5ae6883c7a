package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
)

type UserServiceSuite struct {
	suite.Suite
	users   *repository.MemoryUserRepository
	service *UserService
	ctx     context.Context
}

func (s *UserServiceSuite) SetupTest() {
	s.users = repository.NewMemoryUserRepository()
	s.service = NewUserService(s.users)
	s.ctx = context.Background()
}

func (s *UserServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) TestCreateUser() {
	s.Run("registers a new uid", func() {
		user, err := s.service.CreateUser(s.ctx, "uid-1", model.CreateUserRequest{
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Smith",
			Token:     "fcm-token",
		})
		s.Require().NoError(err)

		s.Equal("uid-1", user.UserID)
		s.Equal("alice@example.com", user.Email)
		s.Equal("fcm-token", user.NotificationToken)
		s.NotZero(user.CreatedAt)
	})

	s.Run("rejects an already registered uid", func() {
		_, err := s.service.CreateUser(s.ctx, "uid-1", model.CreateUserRequest{Email: "alice@example.com"})
		s.Require().NoError(err)

		_, err = s.service.CreateUser(s.ctx, "uid-1", model.CreateUserRequest{Email: "other@example.com"})
		s.ErrorIs(err, apperr.ErrInvalidRequest)
	})
}

func (s *UserServiceSuite) TestGetUser() {
	s.Run("returns an existing user", func() {
		_, err := s.service.CreateUser(s.ctx, "uid-1", model.CreateUserRequest{Email: "alice@example.com"})
		s.Require().NoError(err)

		user, err := s.service.GetUser(s.ctx, "uid-1")
		s.Require().NoError(err)
		s.Equal("alice@example.com", user.Email)
	})

	s.Run("reports a missing user", func() {
		_, err := s.service.GetUser(s.ctx, "ghost")
		s.ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *UserServiceSuite) TestUpdateToken() {
	s.Run("stores the new token and bumps updatedAt", func() {
		created, err := s.service.CreateUser(s.ctx, "uid-1", model.CreateUserRequest{Token: "old"})
		s.Require().NoError(err)

		updated, err := s.service.UpdateToken(s.ctx, "uid-1", "new")
		s.Require().NoError(err)
		s.Equal("new", updated.NotificationToken)
		s.GreaterOrEqual(updated.UpdatedAt, created.UpdatedAt)
	})

	s.Run("fails for a missing user", func() {
		_, err := s.service.UpdateToken(s.ctx, "ghost", "token")
		s.ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *UserServiceSuite) TestUpdateAvatar() {
	s.Run("stores the avatar url", func() {
		_, err := s.service.CreateUser(s.ctx, "uid-1", model.CreateUserRequest{})
		s.Require().NoError(err)

		updated, err := s.service.UpdateAvatar(s.ctx, "uid-1", "https://cdn.example.com/a.png")
		s.Require().NoError(err)
		s.Equal("https://cdn.example.com/a.png", updated.AvatarURL)
	})

	s.Run("fails for a missing user", func() {
		_, err := s.service.UpdateAvatar(s.ctx, "ghost", "url")
		s.ErrorIs(err, apperr.ErrNotFound)
	})
}
