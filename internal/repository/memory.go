package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
)

// In-memory repositories. They stand in for Firestore in tests and mirror
// its observable behavior: store-assigned ids, equality filters, insertion
// order for unordered queries, and updatedAt ordering where the Firestore
// implementation orders.

// MemoryUserRepository is an in-memory UserRepository
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UserID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, userID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) UpdateToken(_ context.Context, userID, token string, updatedAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	user.NotificationToken = token
	user.UpdatedAt = updatedAt
	r.users[userID] = user
	return nil
}

func (r *MemoryUserRepository) UpdateAvatar(_ context.Context, userID, avatarURL string, updatedAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	user.AvatarURL = avatarURL
	user.UpdatedAt = updatedAt
	r.users[userID] = user
	return nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// MemoryRelationRepository is an in-memory RelationRepository
type MemoryRelationRepository struct {
	mu        sync.RWMutex
	relations []model.Relation // insertion order, matching relation-query order
}

func NewMemoryRelationRepository() *MemoryRelationRepository {
	return &MemoryRelationRepository{}
}

func (r *MemoryRelationRepository) Find(_ context.Context, userID, recipientID string) (*model.Relation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rel := range r.relations {
		if rel.UserID == userID && rel.RecipientID == recipientID {
			found := rel
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *MemoryRelationRepository) Create(_ context.Context, relation *model.Relation) (*model.Relation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	relation.RelationID = uuid.NewString()
	r.relations = append(r.relations, *relation)
	return relation, nil
}

func (r *MemoryRelationRepository) Delete(_ context.Context, relationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rel := range r.relations {
		if rel.RelationID == relationID {
			r.relations = append(r.relations[:i], r.relations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryRelationRepository) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Relation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []model.Relation{}
	for _, rel := range r.relations {
		if rel.UserID == userID {
			matched = append(matched, rel)
		}
	}
	if offset >= len(matched) {
		return []model.Relation{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *MemoryRelationRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.relations)), nil
}

// MemoryLocationRepository is an in-memory LocationRepository
type MemoryLocationRepository struct {
	mu        sync.RWMutex
	locations map[string]model.Location
}

func NewMemoryLocationRepository() *MemoryLocationRepository {
	return &MemoryLocationRepository{locations: make(map[string]model.Location)}
}

func (r *MemoryLocationRepository) Create(_ context.Context, location *model.Location) (*model.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	location.LocationID = uuid.NewString()
	r.locations[location.LocationID] = *location
	return location, nil
}

func (r *MemoryLocationRepository) FindByID(_ context.Context, locationID string) (*model.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	location, ok := r.locations[locationID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &location, nil
}

func (r *MemoryLocationRepository) ListByUser(_ context.Context, userID string) ([]model.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	locations := []model.Location{}
	for _, location := range r.locations {
		if location.UserID == userID {
			locations = append(locations, location)
		}
	}
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].UpdatedAt > locations[j].UpdatedAt
	})
	return locations, nil
}

func (r *MemoryLocationRepository) Update(_ context.Context, location *model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locations[location.LocationID]; !ok {
		return apperr.ErrNotFound
	}
	r.locations[location.LocationID] = *location
	return nil
}

func (r *MemoryLocationRepository) Delete(_ context.Context, locationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locations, locationID)
	return nil
}

func (r *MemoryLocationRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.locations)), nil
}

// MemoryEventRepository is an in-memory EventRepository
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []model.Event
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{}
}

func (r *MemoryEventRepository) Create(_ context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.EventID = uuid.NewString()
	r.events = append(r.events, *event)
	return event, nil
}

func (r *MemoryEventRepository) FindByID(_ context.Context, eventID string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, event := range r.events {
		if event.EventID == eventID {
			found := event
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *MemoryEventRepository) LatestByUser(_ context.Context, userID string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *model.Event
	for i := range r.events {
		event := r.events[i]
		if event.UserID != userID {
			continue
		}
		if latest == nil || event.UpdatedAt > latest.UpdatedAt {
			latest = &event
		}
	}
	if latest == nil {
		return nil, apperr.ErrNotFound
	}
	found := *latest
	return &found, nil
}

func (r *MemoryEventRepository) Delete(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, event := range r.events {
		if event.EventID == eventID {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryEventRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.events)), nil
}
