package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// DBHealth returns the GET /api/db-health handler, which pings the store.
func DBHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
