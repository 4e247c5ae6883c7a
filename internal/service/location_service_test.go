package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
)

type LocationServiceSuite struct {
	suite.Suite
	locations *repository.MemoryLocationRepository
	service   *LocationService
	ctx       context.Context
}

func (s *LocationServiceSuite) SetupTest() {
	s.locations = repository.NewMemoryLocationRepository()
	s.service = NewLocationService(s.locations)
	s.ctx = context.Background()
}

func TestLocationServiceSuite(t *testing.T) {
	suite.Run(t, new(LocationServiceSuite))
}

func validLocationRequest() model.CreateLocationRequest {
	return model.CreateLocationRequest{
		Latitude:  52.3702,
		Longitude: 4.8952,
		Width:     150,
		Height:    80,
		Tag:       "Home",
		Category:  "personal",
	}
}

func (s *LocationServiceSuite) TestCreateLocation() {
	s.Run("creates a valid geofence", func() {
		location, err := s.service.CreateLocation(s.ctx, "alice", validLocationRequest())
		s.Require().NoError(err)

		s.NotEmpty(location.LocationID)
		s.Equal("alice", location.UserID)
		s.Equal("Home", location.Tag)
		s.NotZero(location.CreatedAt)
		s.Equal(location.CreatedAt, location.UpdatedAt)
	})

	s.Run("rejects non-positive width", func() {
		req := validLocationRequest()
		req.Width = 0
		_, err := s.service.CreateLocation(s.ctx, "alice", req)
		s.ErrorIs(err, apperr.ErrInvalidRequest)
	})

	s.Run("rejects non-positive height", func() {
		req := validLocationRequest()
		req.Height = -5
		_, err := s.service.CreateLocation(s.ctx, "alice", req)
		s.ErrorIs(err, apperr.ErrInvalidRequest)
	})

	s.Run("rejects empty tag", func() {
		req := validLocationRequest()
		req.Tag = ""
		_, err := s.service.CreateLocation(s.ctx, "alice", req)
		s.ErrorIs(err, apperr.ErrInvalidRequest)
	})
}

func (s *LocationServiceSuite) TestEditLocation() {
	s.Run("overwrites geofence fields and keeps ownership", func() {
		created, err := s.service.CreateLocation(s.ctx, "alice", validLocationRequest())
		s.Require().NoError(err)

		edited, err := s.service.EditLocation(s.ctx, created.LocationID, model.EditLocationRequest{
			Latitude:  48.8566,
			Longitude: 2.3522,
			Width:     300,
			Height:    200,
			Tag:       "Office",
			Category:  "work",
		})
		s.Require().NoError(err)

		s.Equal(created.LocationID, edited.LocationID)
		s.Equal("alice", edited.UserID)
		s.Equal("Office", edited.Tag)
		s.Equal(created.CreatedAt, edited.CreatedAt)
		s.InDelta(48.8566, edited.Latitude, 1e-9)
	})

	s.Run("validates before touching the store", func() {
		created, err := s.service.CreateLocation(s.ctx, "alice", validLocationRequest())
		s.Require().NoError(err)

		_, err = s.service.EditLocation(s.ctx, created.LocationID, model.EditLocationRequest{Tag: ""})
		s.ErrorIs(err, apperr.ErrInvalidRequest)

		unchanged, err := s.service.GetLocation(s.ctx, created.LocationID)
		s.Require().NoError(err)
		s.Equal("Home", unchanged.Tag)
	})

	s.Run("fails for a missing location", func() {
		req := model.EditLocationRequest{Width: 10, Height: 10, Tag: "x"}
		_, err := s.service.EditLocation(s.ctx, "nope", req)
		s.ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *LocationServiceSuite) TestDeleteLocation() {
	s.Run("removes an existing location", func() {
		created, err := s.service.CreateLocation(s.ctx, "alice", validLocationRequest())
		s.Require().NoError(err)

		s.Require().NoError(s.service.DeleteLocation(s.ctx, created.LocationID))

		_, err = s.service.GetLocation(s.ctx, created.LocationID)
		s.ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("fails for a missing location", func() {
		s.ErrorIs(s.service.DeleteLocation(s.ctx, "nope"), apperr.ErrNotFound)
	})
}

func (s *LocationServiceSuite) TestListLocations() {
	s.Run("returns only the caller's locations", func() {
		_, err := s.service.CreateLocation(s.ctx, "alice", validLocationRequest())
		s.Require().NoError(err)
		_, err = s.service.CreateLocation(s.ctx, "bob", validLocationRequest())
		s.Require().NoError(err)

		locations, err := s.service.ListLocations(s.ctx, "alice")
		s.Require().NoError(err)
		s.Require().Len(locations, 1)
		s.Equal("alice", locations[0].UserID)
	})
}
