package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/ws"
	"github.com/whereaboutapp/api-whereabout/pkg/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser WebSocket clients cannot set custom headers, so origin
	// checking is left to the CORS layer on the upgrade request
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades authenticated connections into the event hub
type WSHandler struct {
	hub      *ws.Hub
	verifier auth.Verifier
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub, verifier auth.Verifier) *WSHandler {
	return &WSHandler{hub: hub, verifier: verifier}
}

// Connect godoc
// @Summary Open the realtime event socket
// @Description Upgrades to a WebSocket that pushes friend check-in and friend added events. Auth token goes in the token query parameter.
// @Tags ws
// @Param token query string true "Auth token"
// @Success 101
// @Failure 401 {object} model.ErrorResponse
// @Router /ws [get]
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized", Message: "token query parameter required"})
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized", Message: "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, identity.UID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
