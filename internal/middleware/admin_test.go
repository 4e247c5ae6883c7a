package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminRouter(username, password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(AdminAuth(username, password))
	admin.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAdminAuth(t *testing.T) {
	t.Run("rejects requests without credentials", func(t *testing.T) {
		router := adminRouter("admin", "secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		router := adminRouter("admin", "secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.SetBasicAuth("admin", "wrong")

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts correct plaintext credentials", func(t *testing.T) {
		router := adminRouter("admin", "secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.SetBasicAuth("admin", "secret")

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("accepts a password checked against a bcrypt hash", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
		require.NoError(t, err)

		router := adminRouter("admin", string(hash))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.SetBasicAuth("admin", "secret")

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("fails closed when credentials are not configured", func(t *testing.T) {
		router := adminRouter("", "")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.SetBasicAuth("admin", "secret")

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
