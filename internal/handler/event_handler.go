package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/service"
	"github.com/whereaboutapp/api-whereabout/internal/ws"
	"github.com/whereaboutapp/api-whereabout/pkg/notification"
)

// EventHandler handles check-in event endpoints
type EventHandler struct {
	eventService  *service.EventService
	friendService *service.FriendService
	userService   *service.UserService
	hub           *ws.Hub
	notifier      *notification.Service
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *service.EventService, friendService *service.FriendService, userService *service.UserService, hub *ws.Hub, notifier *notification.Service) *EventHandler {
	return &EventHandler{
		eventService:  eventService,
		friendService: friendService,
		userService:   userService,
		hub:           hub,
		notifier:      notifier,
	}
}

// FetchEvent godoc
// @Summary Fetch a single check-in event
// @Description Returns the event document, or null if it does not exist
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Security BearerAuth
// @Router /api/events/{id} [get]
func (h *EventHandler) FetchEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Record a check-in at a location
// @Description Creates a check-in event for the caller and notifies their friends
// @Tags events
// @Accept json
// @Produce json
// @Param request body model.CreateEventRequest true "Check-in fields"
// @Success 200 {object} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/events/create [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	event, location, err := h.eventService.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	go h.notifyCheckin(userID, event, location)

	c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete a check-in event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {boolean} boolean
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/events/{id}/delete [post]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// notifyCheckin fans the check-in out to the user's friends over the socket
// and FCM. Runs detached from the request.
func (h *EventHandler) notifyCheckin(userID string, event *model.Event, location *model.Location) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	friendIDs, err := h.friendService.FriendIDs(ctx, userID)
	if err != nil {
		log.Printf("Check-in fanout: failed to list friends of %s: %v", userID, err)
		return
	}
	if len(friendIDs) == 0 {
		return
	}

	author, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			log.Printf("Check-in fanout: failed to load user %s: %v", userID, err)
		}
		return
	}

	if h.hub != nil {
		h.hub.SendToUsers(friendIDs, &model.WSEvent{
			Type: model.WSEventFriendCheckin,
			Payload: model.CheckinEvent{
				UserID:      userID,
				DisplayName: author.DisplayName(),
				EventID:     event.EventID,
				LocationID:  location.LocationID,
				LocationTag: location.Tag,
			},
		})
	}

	if h.notifier == nil {
		return
	}
	for _, friendID := range friendIDs {
		friend, err := h.userService.GetUser(ctx, friendID)
		if err != nil || friend.NotificationToken == "" {
			continue
		}
		if err := h.notifier.SendCheckin(ctx, friend.NotificationToken, author.DisplayName(), location.Tag); err != nil {
			log.Printf("Check-in fanout: FCM send to %s failed: %v", friendID, err)
		}
	}
}
