package middleware

import (
	"net/http"
	"strings"

	"github.com/LevaniIlashvili/Bankist/utils"
	"github.com/gin-gonic/gin"
)

const usernameKey = "username"

// AuthMiddleware validates the Bearer token and stores the username it
// carries on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		username, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// GetUsername returns the authenticated username, or "" outside an
// authenticated request.
func GetUsername(c *gin.Context) string {
	if v, ok := c.Get(usernameKey); ok {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}
