package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims used by the local verifier
type Claims struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens signed with a shared secret. It backs
// AUTH_MODE=local so the API can run without Firebase credentials.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a local JWT verifier
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// GenerateToken creates a signed token for the given identity
func (j *JWTVerifier) GenerateToken(uid, email, name string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UID:   uid,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "whereabout",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Verify parses and validates a token
func (j *JWTVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	identity := &Identity{
		UID:     claims.UID,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return identity, nil
}
