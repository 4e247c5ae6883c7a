package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/service"
)

// LocationHandler handles geofenced location endpoints
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// ListLocations godoc
// @Summary List the caller's locations
// @Description Returns all locations owned by the authenticated user, newest first
// @Tags locations
// @Produce json
// @Success 200 {array} model.Location
// @Security BearerAuth
// @Router /api/locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	locations, err := h.locationService.ListLocations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// FetchLocation godoc
// @Summary Fetch a single location
// @Description Returns the location document, or null if it does not exist
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} model.Location
// @Security BearerAuth
// @Router /api/locations/{id} [get]
func (h *LocationHandler) FetchLocation(c *gin.Context) {
	location, err := h.locationService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// CreateLocation godoc
// @Summary Create a geofenced location
// @Tags locations
// @Accept json
// @Produce json
// @Param request body model.CreateLocationRequest true "Location fields"
// @Success 200 {object} model.Location
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/create [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req model.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// EditLocation godoc
// @Summary Edit a location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body model.EditLocationRequest true "Updated fields"
// @Success 200 {object} model.Location
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/{id}/edit [post]
func (h *LocationHandler) EditLocation(c *gin.Context) {
	var req model.EditLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	location, err := h.locationService.EditLocation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation godoc
// @Summary Delete a location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {boolean} boolean
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/{id}/delete [post]
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	if err := h.locationService.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}
