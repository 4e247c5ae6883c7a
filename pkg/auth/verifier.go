// Package auth verifies bearer identity tokens and exposes the decoded
// identity to the rest of the application.
package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// Identity is the decoded claim set of a verified bearer token. The UID is
// the effective userId for the request.
type Identity struct {
	UID       string
	Email     string
	Name      string
	Picture   string
	IssuedAt  int64
	ExpiresAt int64
}

// Verifier validates an opaque bearer token and returns the decoded identity.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier validates Firebase ID tokens
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a verifier backed by the Firebase Auth service
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify validates the token signature, audience, and expiry against Firebase
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid id token: %w", err)
	}
	identity := &Identity{
		UID:       token.UID,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.Expires,
	}
	// name and picture are absent for some providers (e.g. Apple auth)
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Picture = picture
	}
	return identity, nil
}
