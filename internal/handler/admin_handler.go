package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
)

// AdminHandler handles the Basic-auth protected admin endpoints
type AdminHandler struct {
	userRepo     repository.UserRepository
	relationRepo repository.RelationRepository
	locationRepo repository.LocationRepository
	eventRepo    repository.EventRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repository.UserRepository, relationRepo repository.RelationRepository, locationRepo repository.LocationRepository, eventRepo repository.EventRepository) *AdminHandler {
	return &AdminHandler{
		userRepo:     userRepo,
		relationRepo: relationRepo,
		locationRepo: locationRepo,
		eventRepo:    eventRepo,
	}
}

// Stats godoc
// @Summary Collection counts
// @Description Returns document counts for every collection
// @Tags admin
// @Produce json
// @Success 200 {object} model.StatsResponse
// @Failure 401 {object} model.ErrorResponse
// @Security BasicAuth
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	var resp model.StatsResponse
	var err error

	if resp.Users, err = h.userRepo.Count(ctx); err != nil {
		log.Printf("Stats: user count failed: %v", err)
		respondError(c, err)
		return
	}
	if resp.Relations, err = h.relationRepo.Count(ctx); err != nil {
		log.Printf("Stats: relation count failed: %v", err)
		respondError(c, err)
		return
	}
	if resp.Locations, err = h.locationRepo.Count(ctx); err != nil {
		log.Printf("Stats: location count failed: %v", err)
		respondError(c, err)
		return
	}
	if resp.Events, err = h.eventRepo.Count(ctx); err != nil {
		log.Printf("Stats: event count failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
