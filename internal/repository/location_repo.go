package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
)

// firestoreLocationRepository is the Firestore-backed LocationRepository
type firestoreLocationRepository struct {
	client *firestore.Client
}

func NewLocationRepository(client *firestore.Client) LocationRepository {
	return &firestoreLocationRepository{client: client}
}

func (r *firestoreLocationRepository) Create(ctx context.Context, location *model.Location) (*model.Location, error) {
	ref, _, err := r.client.Collection(ColLocations).Add(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	location.LocationID = ref.ID
	return location, nil
}

func (r *firestoreLocationRepository) FindByID(ctx context.Context, locationID string) (*model.Location, error) {
	snap, err := r.client.Collection(ColLocations).Doc(locationID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read location %s: %w", locationID, err)
	}
	var location model.Location
	if err := snap.DataTo(&location); err != nil {
		return nil, fmt.Errorf("failed to decode location %s: %w", locationID, err)
	}
	location.LocationID = snap.Ref.ID
	return &location, nil
}

// ListByUser returns the user's locations, most recently updated first
func (r *firestoreLocationRepository) ListByUser(ctx context.Context, userID string) ([]model.Location, error) {
	iter := r.client.Collection(ColLocations).
		Where("userId", "==", userID).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	locations := []model.Location{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query locations: %w", err)
		}
		var location model.Location
		if err := snap.DataTo(&location); err != nil {
			return nil, fmt.Errorf("failed to decode location %s: %w", snap.Ref.ID, err)
		}
		location.LocationID = snap.Ref.ID
		locations = append(locations, location)
	}
	return locations, nil
}

// Update overwrites the location document with the given value
func (r *firestoreLocationRepository) Update(ctx context.Context, location *model.Location) error {
	_, err := r.client.Collection(ColLocations).Doc(location.LocationID).Set(ctx, location)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

func (r *firestoreLocationRepository) Delete(ctx context.Context, locationID string) error {
	_, err := r.client.Collection(ColLocations).Doc(locationID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

func (r *firestoreLocationRepository) Count(ctx context.Context) (int64, error) {
	return countCollection(ctx, r.client.Collection(ColLocations))
}
