package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/config"
)

// Health reports whether the database answers a ping.
func Health(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
