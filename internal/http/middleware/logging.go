package middleware

import (
	"net/http"
	"time"

	"todo_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one line per request. Place it after RequestID.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		log := logger.FromContext(c.Request.Context())
		if status >= http.StatusInternalServerError {
			log.Error("request", args...)
			return
		}
		log.Info("request", args...)
	}
}
