package middleware

import (
	"net/http"
	"strings"

	"go-media-library/internal/config"
	"go-media-library/internal/utils"

	"github.com/gin-gonic/gin"
)

// Auth attaches the caller's identity to the request context. When user
// scoping is enabled a valid bearer token is mandatory; otherwise the
// identity is optional and requests without one proceed anonymously.
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		if token != "" && token != header {
			if userID, err := utils.ParseToken(token, cfg); err == nil {
				c.Set("user_id", userID)
			} else if cfg.JWT.UserScoping {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				c.Abort()
				return
			}
		} else if cfg.JWT.UserScoping {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or nil for anonymous
// requests.
func CurrentUserID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := value.(uint)
	if !ok {
		return nil
	}
	return &id
}
