package handler

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/service"
	"github.com/whereaboutapp/api-whereabout/pkg/mailer"
	"github.com/whereaboutapp/api-whereabout/pkg/storage"
)

const maxAvatarSize = 5 << 20 // 5 MB

// UserHandler handles user profile endpoints
type UserHandler struct {
	userService *service.UserService
	storage     *storage.Storage
	mailer      *mailer.Mailer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, st *storage.Storage, m *mailer.Mailer) *UserHandler {
	return &UserHandler{
		userService: userService,
		storage:     st,
		mailer:      m,
	}
}

// FetchUser godoc
// @Summary Fetch the caller's user profile
// @Description The path id is accepted for URL symmetry but the profile is always the verified caller's
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (h *UserHandler) FetchUser(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create the caller's user document
// @Description Creates a profile for the authenticated user; fails if one already exists
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.CreateUserRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/users/create [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.mailer != nil && user.Email != "" {
		go func(email, name string) {
			if err := h.mailer.SendWelcome(email, name); err != nil {
				log.Printf("Failed to send welcome mail to %s: %v", email, err)
			}
		}(user.Email, user.FirstName)
	}

	c.JSON(http.StatusOK, user)
}

// UpdateToken godoc
// @Summary Update a user's push notification token
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body model.UpdateUserTokenRequest true "Notification token"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/users/{id}/token [post]
func (h *UserHandler) UpdateToken(c *gin.Context) {
	// Like FetchUser, the path id is ignored in favor of the verified uid
	userID := c.MustGet("user_id").(string)

	var req model.UpdateUserTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	user, err := h.userService.UpdateToken(c.Request.Context(), userID, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary Upload the caller's avatar image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Security BearerAuth
// @Router /api/users/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Error: "storage_unavailable", Message: "object storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: "file is required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid_request", Message: "file exceeds 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "upload_failed", Message: err.Error()})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	url, err := h.storage.Upload(c.Request.Context(), objectName, file, fileHeader.Size, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "upload_failed", Message: err.Error()})
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), userID, url)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
