package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
)

// respondError maps a service error to an HTTP response
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)

	code := "internal_error"
	switch {
	case errors.Is(err, apperr.ErrInvalidRequest):
		code = "invalid_request"
	case errors.Is(err, apperr.ErrNotFound):
		code = "not_found"
	case errors.Is(err, apperr.ErrUnauthorized):
		code = "unauthorized"
	}

	c.JSON(status, model.ErrorResponse{Error: code, Message: err.Error()})
}

// Root godoc
// @Summary Service banner
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "whereabout-api", "status": "ok"})
}

// Health godoc
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
