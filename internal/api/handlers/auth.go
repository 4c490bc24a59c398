package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bulkgen/internal/api/middleware"
	"bulkgen/internal/services/wordpress"
)

type AuthHandler struct {
	auth *wordpress.Service
}

func NewAuthHandler(auth *wordpress.Service) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginURL tells the frontend where to send users for login.
func (h *AuthHandler) LoginURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"login_url":    h.auth.LoginURL(),
		"auth_enabled": h.auth.Enabled(),
	})
}

// Check reports whether the request carries a valid session. Always a 200:
// this is a probe, not a gate.
func (h *AuthHandler) Check(c *gin.Context) {
	if !h.auth.Enabled() {
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "auth_enabled": false})
		return
	}

	token := middleware.ExtractToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "login_url": h.auth.LoginURL()})
		return
	}

	userID, err := h.auth.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "login_url": h.auth.LoginURL()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user_id": userID})
}
