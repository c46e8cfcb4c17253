package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
)

// TokenAuthorizer validates a settings unlock token
type TokenAuthorizer interface {
	Authorize(token string) error
}

// SettingsAuth requires a valid unlock token as a Bearer credential
func SettingsAuth(authorizer TokenAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		if err := authorizer.Authorize(parts[1]); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("settings_unlocked", true)
		c.Next()
	}
}
