package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mengblog/database"
)

var startTime = time.Now()

// Health handles GET /api/health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).Seconds(),
		"database":  database.Name(),
	})
}
