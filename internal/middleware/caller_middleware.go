package middleware

import (
	"context"

	"messenger-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller identity. It is trusted as sent.
const UserIDHeader = "X-User-Id"

// CallerMiddleware copies the raw caller header into the request context so log lines carry it.
// Parsing and validation stay with the handlers that need an id.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(UserIDHeader); userID != "" {
			ctx := context.WithValue(c.Request.Context(), logger.UserIdKey, userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
