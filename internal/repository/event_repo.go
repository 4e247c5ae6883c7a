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

// firestoreEventRepository is the Firestore-backed EventRepository
type firestoreEventRepository struct {
	client *firestore.Client
}

func NewEventRepository(client *firestore.Client) EventRepository {
	return &firestoreEventRepository{client: client}
}

func (r *firestoreEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	ref, _, err := r.client.Collection(ColEvents).Add(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	event.EventID = ref.ID
	return event, nil
}

func (r *firestoreEventRepository) FindByID(ctx context.Context, eventID string) (*model.Event, error) {
	snap, err := r.client.Collection(ColEvents).Doc(eventID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read event %s: %w", eventID, err)
	}
	var event model.Event
	if err := snap.DataTo(&event); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", eventID, err)
	}
	event.EventID = snap.Ref.ID
	return &event, nil
}

// LatestByUser returns the user's most recent event by updatedAt
func (r *firestoreEventRepository) LatestByUser(ctx context.Context, userID string) (*model.Event, error) {
	iter := r.client.Collection(ColEvents).
		Where("userId", "==", userID).
		OrderBy("updatedAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	var event model.Event
	if err := snap.DataTo(&event); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", snap.Ref.ID, err)
	}
	event.EventID = snap.Ref.ID
	return &event, nil
}

func (r *firestoreEventRepository) Delete(ctx context.Context, eventID string) error {
	_, err := r.client.Collection(ColEvents).Doc(eventID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

func (r *firestoreEventRepository) Count(ctx context.Context) (int64, error) {
	return countCollection(ctx, r.client.Collection(ColEvents))
}
