// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health serves the /healthz endpoint. It pings the database so load
// balancers pull the instance out of rotation when the connection is gone.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if db != nil {
			if err := db.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
	}
}
