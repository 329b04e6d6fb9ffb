package middleware

import (
	"dfx-site/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestId"
)

/**
 * Request ID middleware
 * @description
 * - Keeps a well formed X-Request-ID sent by a proxy, otherwise generates one
 * - Echoes the ID in the response header and stores it in the gin context
 * - Failed requests are logged with their ID
 */
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		if status := c.Writer.Status(); status >= 500 {
			logger.Errorf("[%s] %s %s -> %d %s", id, c.Request.Method, c.Request.URL.Path, status, c.Errors.String())
		} else if status >= 400 {
			logger.Debugf("[%s] %s %s -> %d", id, c.Request.Method, c.Request.URL.Path, status)
		}
	}
}
