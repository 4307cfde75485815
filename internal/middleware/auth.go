package middleware

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/utils"
)

// TokenParser validates a bearer token and returns its claims. Satisfied by
// *casdoorsdk.Client.
type TokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorClient builds the identity-provider client used to verify
// bearer tokens.
func NewCasdoorClient(endpoint, clientID, clientSecret, certificate, organization, application string) *casdoorsdk.Client {
	return casdoorsdk.NewClient(endpoint, clientID, clientSecret, certificate, organization, application)
}

// Auth verifies the Authorization header and places the caller's identity
// into the gin context under "user_id" and "user_name".
func Auth(parser TokenParser, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := parser.ParseJwtToken(token)
		if err != nil {
			logger.Warn("Token verification failed", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", claims.User.Id)
		c.Set("user_name", claims.User.Name)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
