// Package repository implements document-store access for each entity.
// Every repository is an interface with a Firestore implementation and an
// in-memory implementation; services depend only on the interfaces, so tests
// run against the in-memory store.
package repository

import (
	"context"

	"github.com/whereaboutapp/api-whereabout/internal/model"
)

// Firestore collection names
const (
	ColUsers     = "Users"
	ColRelations = "Relations"
	ColLocations = "Locations"
	ColEvents    = "Events"
)

// UserRepository handles the Users collection. Documents are keyed by uid.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID string) (*model.User, error)
	UpdateToken(ctx context.Context, userID, token string, updatedAt int64) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string, updatedAt int64) error
	Count(ctx context.Context) (int64, error)
}

// RelationRepository handles the Relations collection. Each document is one
// direction of a relation; the store assigns document ids.
type RelationRepository interface {
	// Find returns the relation from userID to recipientID, or apperr.ErrNotFound.
	Find(ctx context.Context, userID, recipientID string) (*model.Relation, error)
	// Create inserts a relation document and fills in its assigned id.
	Create(ctx context.Context, relation *model.Relation) (*model.Relation, error)
	// Delete removes a relation by document id.
	Delete(ctx context.Context, relationID string) error
	// ListByUser pages through a user's outgoing relations in query order.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Relation, error)
	Count(ctx context.Context) (int64, error)
}

// LocationRepository handles the Locations collection.
type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) (*model.Location, error)
	FindByID(ctx context.Context, locationID string) (*model.Location, error)
	// ListByUser returns a user's locations ordered by updatedAt descending.
	ListByUser(ctx context.Context, userID string) ([]model.Location, error)
	Update(ctx context.Context, location *model.Location) error
	Delete(ctx context.Context, locationID string) error
	Count(ctx context.Context) (int64, error)
}

// EventRepository handles the Events collection.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, eventID string) (*model.Event, error)
	// LatestByUser returns the user's most recent event by updatedAt,
	// or apperr.ErrNotFound when the user has none.
	LatestByUser(ctx context.Context, userID string) (*model.Event, error)
	Delete(ctx context.Context, eventID string) error
	Count(ctx context.Context) (int64, error)
}
