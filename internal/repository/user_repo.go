package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
)

// firestoreUserRepository is the Firestore-backed UserRepository
type firestoreUserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

// Create writes the user document keyed by uid
func (r *firestoreUserRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.client.Collection(ColUsers).Doc(user.UserID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

// FindByID fetches a user by uid
func (r *firestoreUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	snap, err := r.client.Collection(ColUsers).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user %s: %w", userID, err)
	}
	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", userID, err)
	}
	return &user, nil
}

// UpdateToken sets the notification token and bumps updatedAt
func (r *firestoreUserRepository) UpdateToken(ctx context.Context, userID, token string, updatedAt int64) error {
	_, err := r.client.Collection(ColUsers).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "notificationToken", Value: token},
		{Path: "updatedAt", Value: updatedAt},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

// UpdateAvatar sets the avatar URL and bumps updatedAt
func (r *firestoreUserRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string, updatedAt int64) error {
	_, err := r.client.Collection(ColUsers).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "avatarUrl", Value: avatarURL},
		{Path: "updatedAt", Value: updatedAt},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

func (r *firestoreUserRepository) Count(ctx context.Context) (int64, error) {
	return countCollection(ctx, r.client.Collection(ColUsers))
}
