package notification

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Service sends push notifications through Firebase Cloud Messaging
type Service struct {
	client *messaging.Client
}

// NewService creates an FCM notification service. If app is nil the service
// is disabled and every send becomes a no-op.
func NewService(ctx context.Context, app *firebase.App) (*Service, error) {
	if app == nil {
		log.Println("⚠️  FCM disabled: no Firebase app configured")
		return &Service{}, nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize FCM client: %w", err)
	}

	return &Service{client: client}, nil
}

// SendFriendAdded notifies a user that someone added them as a friend
func (s *Service) SendFriendAdded(ctx context.Context, token, friendName string) error {
	title := "New friend"
	body := fmt.Sprintf("%s added you as a friend", friendName)
	return s.send(ctx, token, title, body, map[string]string{
		"type": "friend_added",
	})
}

// SendCheckin notifies a user that a friend checked in at a location
func (s *Service) SendCheckin(ctx context.Context, token, friendName, locationTag string) error {
	title := "Friend check-in"
	body := fmt.Sprintf("%s checked in at %s", friendName, locationTag)
	return s.send(ctx, token, title, body, map[string]string{
		"type": "friend_checkin",
	})
}

func (s *Service) send(ctx context.Context, token, title, body string, data map[string]string) error {
	if s.client == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
