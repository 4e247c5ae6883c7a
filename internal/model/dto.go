package model

// ========== User DTOs ==========

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Token     string `json:"token"`
}

type UpdateUserTokenRequest struct {
	Token string `json:"token"`
}

// ========== Relation DTOs ==========

type CreateRelationRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
}

// RelationPairResponse carries both directions of a friendship after create.
type RelationPairResponse struct {
	Relation Relation `json:"relation"`
	Inverse  Relation `json:"inverse"`
}

// ========== Location DTOs ==========

type CreateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Tag       string  `json:"tag"`
	Category  string  `json:"category"`
}

type EditLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Tag       string  `json:"tag"`
	Category  string  `json:"category"`
}

// ========== Event DTOs ==========

type CreateEventRequest struct {
	LocationID string `json:"locationId" binding:"required"`
}

// ========== Feed DTOs ==========

type FeedRequest struct {
	Page  int `form:"page,default=0"`
	Limit int `form:"limit,default=10"`
}

// ========== Admin DTOs ==========

type StatsResponse struct {
	Users     int64 `json:"users"`
	Relations int64 `json:"relations"`
	Locations int64 `json:"locations"`
	Events    int64 `json:"events"`
}

// ========== WebSocket Event DTOs ==========

type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocket event types
const (
	WSEventFriendCheckin = "friend_checkin"
	WSEventFriendAdded   = "friend_added"
)

type CheckinEvent struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	EventID     string `json:"eventId"`
	LocationID  string `json:"locationId"`
	LocationTag string `json:"locationTag"`
}

type FriendAddedEvent struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// ========== Common ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
