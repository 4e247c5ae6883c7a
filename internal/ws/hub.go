package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/whereaboutapp/api-whereabout/internal/model"
)

const redisChannel = "whereabout:events"

// Hub manages WebSocket connections and pushes feed events to connected
// users. Events go through Redis Pub/Sub so delivery works across multiple
// instances. The socket is push-only; no business logic rides it.
type Hub struct {
	// Map of userID -> set of client connections (one user can have multiple devices)
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	rdb *redis.Client
}

// NewHub creates a new WebSocket Hub
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
	}
}

// Run starts the Hub's main event loop
func (h *Hub) Run(ctx context.Context) {
	go h.subscribeRedis(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// Register queues a client for registration with the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.UserID]; !ok {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true
	log.Printf("✅ Client connected: %s (total connections: %d)", client.UserID, len(h.clients[client.UserID]))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.UserID]; ok {
		delete(clients, client)
		close(client.send)
		if len(clients) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	log.Printf("❌ Client disconnected: %s", client.UserID)
}

// SendToUser sends an event to a specific user (all their connections)
func (h *Hub) SendToUser(userID string, event *model.WSEvent) {
	// Publish to Redis so all instances can deliver
	h.publishToRedis(&TargetedEvent{
		TargetUserID: userID,
		Event:        event,
	})
}

// SendToUsers sends an event to multiple users
func (h *Hub) SendToUsers(userIDs []string, event *model.WSEvent) {
	for _, userID := range userIDs {
		h.SendToUser(userID, event)
	}
}

// sendToLocalUser sends an event to a user on this instance only
func (h *Hub) sendToLocalUser(userID string, event *model.WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("Error marshaling event: %v", err)
			return
		}
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send buffer is full, close connection
				close(client.send)
				delete(clients, client)
			}
		}
	}
}

// TargetedEvent wraps an event with a target user ID for Redis Pub/Sub
type TargetedEvent struct {
	TargetUserID string         `json:"target_user_id"`
	Event        *model.WSEvent `json:"event"`
}

// publishToRedis publishes an event to Redis for cross-instance delivery
func (h *Hub) publishToRedis(data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling for Redis: %v", err)
		return
	}

	if err := h.rdb.Publish(context.Background(), redisChannel, jsonData).Err(); err != nil {
		log.Printf("Error publishing to Redis: %v", err)
	}
}

// subscribeRedis subscribes to Redis and delivers events to local clients
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	log.Println("📡 Redis Pub/Sub subscriber started")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			var targeted TargetedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &targeted); err != nil {
				log.Printf("Error unmarshaling Redis message: %v", err)
				continue
			}
			if targeted.TargetUserID != "" && targeted.Event != nil {
				h.sendToLocalUser(targeted.TargetUserID, targeted.Event)
			}
		}
	}
}
