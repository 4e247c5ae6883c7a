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

// maxFriendFanout bounds how many relations are loaded when notifying a
// user's friends about a check-in.
const maxFriendFanout = 500

// FriendService maintains symmetric friendships across two directional
// relation documents. The two writes are independent and non-transactional:
// a crash between them leaves a one-sided friendship, which a retry repairs
// because each direction is an existence-checked, idempotent write.
type FriendService struct {
	relationRepo repository.RelationRepository
}

func NewFriendService(relationRepo repository.RelationRepository) *FriendService {
	return &FriendService{relationRepo: relationRepo}
}

// CreateFriend ensures both directions of the friendship exist and returns
// the forward and inverse relation records. Calling it again with the same
// pair returns the same documents.
func (s *FriendService) CreateFriend(ctx context.Context, userID, recipientID string) (*model.Relation, *model.Relation, error) {
	if userID == recipientID {
		return nil, nil, fmt.Errorf("%w: user %s cannot equal recipientId", apperr.ErrInvalidRequest, userID)
	}

	now := time.Now().Unix()

	relation, err := s.relationRepo.Find(ctx, userID, recipientID)
	if errors.Is(err, apperr.ErrNotFound) {
		relation, err = s.relationRepo.Create(ctx, &model.Relation{
			UserID:      userID,
			RecipientID: recipientID,
			Relation:    model.RelationFriend,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err != nil {
		return nil, nil, err
	}

	inverse, err := s.relationRepo.Find(ctx, recipientID, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		inverse, err = s.relationRepo.Create(ctx, &model.Relation{
			UserID:      recipientID,
			RecipientID: userID,
			Relation:    model.RelationFriend,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err != nil {
		return nil, nil, err
	}

	return relation, inverse, nil
}

// Unfriend removes both directions of the friendship. A missing direction
// is a no-op, so retries and repeated calls succeed.
func (s *FriendService) Unfriend(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return fmt.Errorf("%w: user %s cannot equal recipientId", apperr.ErrInvalidRequest, userID)
	}

	relation, err := s.relationRepo.Find(ctx, userID, friendID)
	if err == nil {
		if err := s.relationRepo.Delete(ctx, relation.RelationID); err != nil {
			return err
		}
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	inverse, err := s.relationRepo.Find(ctx, friendID, userID)
	if err == nil {
		if err := s.relationRepo.Delete(ctx, inverse.RelationID); err != nil {
			return err
		}
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	return nil
}

// FriendIDs returns the ids of the user's friends, bounded by maxFriendFanout.
// Used for check-in fanout, not for feed pagination.
func (s *FriendService) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	relations, err := s.relationRepo.ListByUser(ctx, userID, 0, maxFriendFanout)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(relations))
	for _, relation := range relations {
		if relation.Relation != model.RelationFriend {
			continue
		}
		ids = append(ids, relation.FriendID(userID))
	}
	return ids, nil
}
