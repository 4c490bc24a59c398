package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bulkgen/internal/services/wordpress"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "user_id"

// Auth rejects requests without a valid WordPress session token. When no
// signing secret is configured the gate stays open.
func Auth(auth *wordpress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.Next()
			return
		}

		token := ExtractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing session token", "login_url": auth.LoginURL()})
			c.Abort()
			return
		}

		userID, err := auth.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token", "login_url": auth.LoginURL()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// ExtractToken looks in the Authorization header, then the token query
// parameter, then the token cookie.
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if token, err := c.Cookie("token"); err == nil {
		return token
	}
	return ""
}
