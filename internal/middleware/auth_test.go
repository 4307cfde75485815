package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/utils"
	"github.com/stretchr/testify/assert"
)

type stubParser struct {
	claims *casdoorsdk.Claims
	err    error
}

func (s *stubParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	return s.claims, s.err
}

func authTestRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(parser, utils.NewDevelopmentLogger()), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestAuth(t *testing.T) {
	t.Run("valid token sets user identity", func(t *testing.T) {
		claims := &casdoorsdk.Claims{}
		claims.User.Id = "user-123"
		claims.User.Name = "jdoe"
		router := authTestRouter(&stubParser{claims: claims})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-123")
	})

	t.Run("missing header", func(t *testing.T) {
		router := authTestRouter(&stubParser{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		router := authTestRouter(&stubParser{err: errors.New("signature mismatch")})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		router := authTestRouter(&stubParser{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
