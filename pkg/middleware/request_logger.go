package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
)

// RequestLogger logs one line per request through the structured logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		logger.L().Debugw("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		)
	}
}
