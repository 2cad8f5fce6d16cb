package middlewares

import (
	"net/http"
	"plannova/src/config"

	"github.com/gin-gonic/gin"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("Referrer-Policy", "strict-origin")
	ctx.Header("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
	if !config.IsLocal() {
		ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}
}

// MaintenanceMode rejects every request except the health check while
// MAINTENANCE_MODE is on.
func MaintenanceMode(ctx *gin.Context) {
	if !config.MAINTENANCE_MODE || ctx.Request.URL.Path == "/" {
		return
	}
	ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "server is under maintenance"})
}
