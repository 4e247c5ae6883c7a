package model

// User represents a registered user. The document id in the Users collection
// is the Firebase uid, so at most one document can exist per uid.
type User struct {
	UserID            string `json:"userId" firestore:"userId"`
	Email             string `json:"email,omitempty" firestore:"email"`
	FirstName         string `json:"firstName,omitempty" firestore:"firstName"`
	LastName          string `json:"lastName,omitempty" firestore:"lastName"`
	NotificationToken string `json:"notificationToken,omitempty" firestore:"notificationToken"`
	AvatarURL         string `json:"avatarUrl,omitempty" firestore:"avatarUrl"`
	CreatedAt         int64  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt         int64  `json:"updatedAt" firestore:"updatedAt"`
}

// DisplayName returns the user's name for notifications and logs.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Email != "":
		return u.Email
	default:
		return u.UserID
	}
}
