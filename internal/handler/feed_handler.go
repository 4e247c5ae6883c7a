package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/service"
)

// FeedHandler handles the friends feed endpoint
type FeedHandler struct {
	feedService *service.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// FetchFeed godoc
// @Summary Fetch the caller's friends feed
// @Description Returns one entry per friend on the requested page, each with the friend's profile and their latest check-in if any
// @Tags feed
// @Produce json
// @Param page query int false "Page number (0-based)" default(0)
// @Param limit query int false "Friends per page" default(10)
// @Success 200 {array} model.FeedItem
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/feed [get]
func (h *FeedHandler) FetchFeed(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req model.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	feed, err := h.feedService.FetchFeed(c.Request.Context(), userID, req.Page, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
