package model

// Location is a rectangular geofence owned by a user.
type Location struct {
	LocationID string  `json:"locationId" firestore:"-"`
	UserID     string  `json:"userId" firestore:"userId"`
	Latitude   float64 `json:"latitude" firestore:"latitude"`
	Longitude  float64 `json:"longitude" firestore:"longitude"`
	Width      float64 `json:"width" firestore:"width"`
	Height     float64 `json:"height" firestore:"height"`
	Tag        string  `json:"tag" firestore:"tag"`
	Category   string  `json:"category,omitempty" firestore:"category"`
	CreatedAt  int64   `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  int64   `json:"updatedAt" firestore:"updatedAt"`
}
