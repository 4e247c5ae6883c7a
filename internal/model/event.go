package model

// Event records a user checking in at a location. Events are immutable
// except for deletion; the referenced location may be deleted later.
type Event struct {
	EventID    string `json:"eventId" firestore:"-"`
	UserID     string `json:"userId" firestore:"userId"`
	LocationID string `json:"locationId" firestore:"locationId"`
	CreatedAt  int64  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt" firestore:"updatedAt"`
}

// FeedItem bundles a friend, their latest event, and that event's location.
type FeedItem struct {
	User     User     `json:"user"`
	Event    Event    `json:"event"`
	Location Location `json:"location"`
}
