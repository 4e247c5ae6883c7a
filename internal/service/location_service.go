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

// LocationService handles geofenced locations
type LocationService struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

func validateGeofence(width, height float64, tag string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width and height cannot be non positive", apperr.ErrInvalidRequest)
	}
	if tag == "" {
		return fmt.Errorf("%w: tag length cannot be zero", apperr.ErrInvalidRequest)
	}
	return nil
}

// CreateLocation validates the geofence and writes a new location document
func (s *LocationService) CreateLocation(ctx context.Context, userID string, req model.CreateLocationRequest) (*model.Location, error) {
	if err := validateGeofence(req.Width, req.Height, req.Tag); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	location := &model.Location{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Width:     req.Width,
		Height:    req.Height,
		Tag:       req.Tag,
		Category:  req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.locationRepo.Create(ctx, location)
}

// ListLocations returns the caller's locations, most recently updated first
func (s *LocationService) ListLocations(ctx context.Context, userID string) ([]model.Location, error) {
	return s.locationRepo.ListByUser(ctx, userID)
}

// GetLocation fetches a location by id; apperr.ErrNotFound when absent
func (s *LocationService) GetLocation(ctx context.Context, locationID string) (*model.Location, error) {
	return s.locationRepo.FindByID(ctx, locationID)
}

// EditLocation validates and overwrites the geofence fields of an existing
// location, preserving owner and createdAt.
func (s *LocationService) EditLocation(ctx context.Context, locationID string, req model.EditLocationRequest) (*model.Location, error) {
	if err := validateGeofence(req.Width, req.Height, req.Tag); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.FindByID(ctx, locationID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: location %s does not exist", apperr.ErrNotFound, locationID)
	}
	if err != nil {
		return nil, err
	}

	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.Width = req.Width
	location.Height = req.Height
	location.Tag = req.Tag
	location.Category = req.Category
	location.UpdatedAt = time.Now().Unix()

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation removes a location. Events referencing it are untouched;
// the feed skips them once the location lookup misses.
func (s *LocationService) DeleteLocation(ctx context.Context, locationID string) error {
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: location %s does not exist", apperr.ErrNotFound, locationID)
		}
		return err
	}
	return s.locationRepo.Delete(ctx, locationID)
}
