package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
)

type EventServiceSuite struct {
	suite.Suite
	events    *repository.MemoryEventRepository
	locations *repository.MemoryLocationRepository
	service   *EventService
	ctx       context.Context
}

func (s *EventServiceSuite) SetupTest() {
	s.events = repository.NewMemoryEventRepository()
	s.locations = repository.NewMemoryLocationRepository()
	s.service = NewEventService(s.events, s.locations)
	s.ctx = context.Background()
}

func TestEventServiceSuite(t *testing.T) {
	suite.Run(t, new(EventServiceSuite))
}

func (s *EventServiceSuite) newLocation(uid string) *model.Location {
	location, err := s.locations.Create(s.ctx, &model.Location{
		UserID: uid,
		Width:  100, Height: 100,
		Tag: "Cafe",
	})
	s.Require().NoError(err)
	return location
}

func (s *EventServiceSuite) TestCreateEvent() {
	s.Run("records a check-in at an existing location", func() {
		location := s.newLocation("alice")

		event, eventLocation, err := s.service.CreateEvent(s.ctx, "alice", model.CreateEventRequest{
			LocationID: location.LocationID,
		})
		s.Require().NoError(err)

		s.NotEmpty(event.EventID)
		s.Equal("alice", event.UserID)
		s.Equal(location.LocationID, event.LocationID)
		s.Equal(location.LocationID, eventLocation.LocationID)
	})

	s.Run("rejects a check-in at a missing location", func() {
		_, _, err := s.service.CreateEvent(s.ctx, "alice", model.CreateEventRequest{
			LocationID: "nope",
		})
		s.ErrorIs(err, apperr.ErrInvalidRequest)
	})

	s.Run("event survives location deletion", func() {
		location := s.newLocation("alice")
		event, _, err := s.service.CreateEvent(s.ctx, "alice", model.CreateEventRequest{
			LocationID: location.LocationID,
		})
		s.Require().NoError(err)

		s.Require().NoError(s.locations.Delete(s.ctx, location.LocationID))

		found, err := s.service.GetEvent(s.ctx, event.EventID)
		s.Require().NoError(err)
		s.Equal(location.LocationID, found.LocationID)
	})
}

func (s *EventServiceSuite) TestDeleteEvent() {
	s.Run("removes an existing event", func() {
		location := s.newLocation("alice")
		event, _, err := s.service.CreateEvent(s.ctx, "alice", model.CreateEventRequest{
			LocationID: location.LocationID,
		})
		s.Require().NoError(err)

		s.Require().NoError(s.service.DeleteEvent(s.ctx, event.EventID))

		_, err = s.service.GetEvent(s.ctx, event.EventID)
		s.ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("fails for a missing event", func() {
		s.ErrorIs(s.service.DeleteEvent(s.ctx, "nope"), apperr.ErrNotFound)
	})
}
