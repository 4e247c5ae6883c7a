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

// FriendHandler handles friend relation endpoints
type FriendHandler struct {
	friendService *service.FriendService
	userService   *service.UserService
	hub           *ws.Hub
	notifier      *notification.Service
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(friendService *service.FriendService, userService *service.UserService, hub *ws.Hub, notifier *notification.Service) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		userService:   userService,
		hub:           hub,
		notifier:      notifier,
	}
}

// CreateFriend godoc
// @Summary Create a mutual friend relation
// @Description Creates both directional relation documents between the caller and the recipient. Safe to retry.
// @Tags friends
// @Accept json
// @Produce json
// @Param request body model.CreateRelationRequest true "Recipient"
// @Success 200 {object} model.RelationPairResponse
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/friends/create [post]
func (h *FriendHandler) CreateFriend(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req model.CreateRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	forward, inverse, err := h.friendService.CreateFriend(c.Request.Context(), userID, req.RecipientID)
	if err != nil {
		respondError(c, err)
		return
	}

	go h.notifyFriendAdded(userID, req.RecipientID)

	c.JSON(http.StatusOK, model.RelationPairResponse{Relation: *forward, Inverse: *inverse})
}

// Unfriend godoc
// @Summary Remove a mutual friend relation
// @Description Deletes both directional relation documents. Succeeds even if they are already gone.
// @Tags friends
// @Produce json
// @Param id path string true "Friend user ID"
// @Success 200 {boolean} boolean
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/friends/{id}/delete [post]
func (h *FriendHandler) Unfriend(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.friendService.Unfriend(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// notifyFriendAdded pushes the new friendship to the recipient over the
// socket and FCM. Runs detached from the request.
func (h *FriendHandler) notifyFriendAdded(userID, recipientID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initiator, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			log.Printf("Friend notification: failed to load user %s: %v", userID, err)
		}
		return
	}

	if h.hub != nil {
		h.hub.SendToUser(recipientID, &model.WSEvent{
			Type: model.WSEventFriendAdded,
			Payload: model.FriendAddedEvent{
				UserID:      userID,
				DisplayName: initiator.DisplayName(),
			},
		})
	}

	if h.notifier == nil {
		return
	}
	recipient, err := h.userService.GetUser(ctx, recipientID)
	if err != nil || recipient.NotificationToken == "" {
		return
	}
	if err := h.notifier.SendFriendAdded(ctx, recipient.NotificationToken, initiator.DisplayName()); err != nil {
		log.Printf("Friend notification: FCM send to %s failed: %v", recipientID, err)
	}
}
