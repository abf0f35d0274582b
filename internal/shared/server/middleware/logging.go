package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"listdist/internal/shared/telemetry"
)

// Logging emits a structured log per request. Handlers may set "listId" and
// "recordCount" on the context to enrich the line.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"list_id":     c.GetString("listId"),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if n, ok := c.Get("recordCount"); ok {
			fields["record_count"] = n
		}
		telemetry.Info("request.complete", fields)
	}
}
