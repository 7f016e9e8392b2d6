package middleware

import (
	"todo_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID propagates X-Request-ID or generates one, and attaches a logger
// carrying it to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		ctx := logger.IntoContext(c.Request.Context(), logger.With(RequestIDKey, id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
