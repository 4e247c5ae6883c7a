package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth gates the admin surface behind HTTP Basic credentials from
// configuration. Comparison is constant-time; when the configured password
// is a bcrypt hash ($2 prefix) the provided password is checked against it.
func AdminAuth(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username == "" || password == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		providedUser, providedPass, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(providedUser), []byte(username)) == 1

		var passOK bool
		if strings.HasPrefix(password, "$2") {
			passOK = bcrypt.CompareHashAndPassword([]byte(password), []byte(providedPass)) == nil
		} else {
			passOK = subtle.ConstantTimeCompare([]byte(providedPass), []byte(password)) == 1
		}

		if !userOK || !passOK {
			unauthorized(c)
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="whereabout admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
}
