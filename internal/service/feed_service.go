package service

import (
	"context"
	"errors"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// FeedService assembles the friends feed: for each friend on the requested
// page, their most recent event and that event's location.
type FeedService struct {
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
	eventRepo    repository.EventRepository
	locationRepo repository.LocationRepository
}

func NewFeedService(
	relationRepo repository.RelationRepository,
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	locationRepo repository.LocationRepository,
) *FeedService {
	return &FeedService{
		relationRepo: relationRepo,
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		locationRepo: locationRepo,
	}
}

// FetchFeed returns at most one feed item per friend on the requested page.
// page/limit paginate the friend list, not the feed items: a friend with no
// events, or whose latest event points at a deleted location, produces no
// item, so fewer than limit items can come back while more friends exist on
// later pages. Item order follows relation-query order, not recency.
func (s *FeedService) FetchFeed(ctx context.Context, userID string, page, limit int) ([]model.FeedItem, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	relations, err := s.relationRepo.ListByUser(ctx, userID, page*limit, limit)
	if err != nil {
		return nil, err
	}

	items := []model.FeedItem{}
	for _, relation := range relations {
		friendID := relation.FriendID(userID)

		friend, err := s.userRepo.FindByID(ctx, friendID)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		event, err := s.eventRepo.LatestByUser(ctx, friendID)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		location, err := s.locationRepo.FindByID(ctx, event.LocationID)
		if errors.Is(err, apperr.ErrNotFound) {
			// location deleted after the check-in; drop the item
			continue
		}
		if err != nil {
			return nil, err
		}

		items = append(items, model.FeedItem{
			User:     *friend,
			Event:    *event,
			Location: *location,
		})
	}

	return items, nil
}
