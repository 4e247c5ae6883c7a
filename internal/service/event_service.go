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

// EventService handles check-in events
type EventService struct {
	eventRepo    repository.EventRepository
	locationRepo repository.LocationRepository
}

func NewEventService(eventRepo repository.EventRepository, locationRepo repository.LocationRepository) *EventService {
	return &EventService{eventRepo: eventRepo, locationRepo: locationRepo}
}

// CreateEvent records a check-in. The referenced location must exist at
// creation time; it may be deleted afterwards without affecting the event.
func (s *EventService) CreateEvent(ctx context.Context, userID string, req model.CreateEventRequest) (*model.Event, *model.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: location %s does not exist", apperr.ErrInvalidRequest, req.LocationID)
	}
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().Unix()
	event := &model.Event{
		UserID:     userID,
		LocationID: req.LocationID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	event, err = s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, nil, err
	}
	return event, location, nil
}

// GetEvent fetches an event by id; apperr.ErrNotFound when absent
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, eventID)
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: event %s does not exist", apperr.ErrNotFound, eventID)
		}
		return err
	}
	return s.eventRepo.Delete(ctx, eventID)
}
