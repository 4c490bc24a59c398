package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Bulkgen API is running",
		"status":  "healthy",
		"version": "1.0.0",
	})
}
