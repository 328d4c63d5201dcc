package middleware

import (
	"time"

	"busdekho/internal/logging"

	"github.com/gin-gonic/gin"
)

// Logger writes one structured access log line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []interface{}{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", float64(latency.Microseconds()) / 1000.0,
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logging.Error("HTTP request", fields...)
		case status >= 400:
			logging.Warn("HTTP request", fields...)
		default:
			logging.Info("HTTP request", fields...)
		}
	}
}
