package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/whereaboutapp/api-whereabout/pkg/auth"
)

// maxTokenCacheTTL caps how long a verified token is trusted without
// re-verifying it against the identity provider.
const maxTokenCacheTTL = 5 * time.Minute

// AuthMiddleware validates bearer tokens and injects the verified uid into
// the request context. Verified tokens are cached in Redis keyed by digest,
// so hot tokens skip the verifier round trip; a cache miss or Redis error
// falls through to the verifier.
func AuthMiddleware(verifier auth.Verifier, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			return
		}

		tokenString := parts[1]
		cacheKey := tokenCacheKey(tokenString)

		ctx := c.Request.Context()
		if rdb != nil {
			if uid, err := rdb.Get(ctx, cacheKey).Result(); err == nil && uid != "" {
				c.Set("user_id", uid)
				c.Next()
				return
			}
		}

		identity, err := verifier.Verify(ctx, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if rdb != nil {
			ttl := maxTokenCacheTTL
			if identity.ExpiresAt > 0 {
				if remaining := time.Until(time.Unix(identity.ExpiresAt, 0)); remaining < ttl {
					ttl = remaining
				}
			}
			if ttl > 0 {
				_ = rdb.Set(ctx, cacheKey, identity.UID, ttl).Err()
			}
		}

		// Store user info in context for downstream handlers
		c.Set("user_id", identity.UID)
		c.Set("identity", identity)

		c.Next()
	}
}

func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "idtoken:" + hex.EncodeToString(sum[:])
}
