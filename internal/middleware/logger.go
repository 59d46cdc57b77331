package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ledger-engine/pkg/logger"
)

// Logger emits one structured log line per request after the handler chain
// completes. Upload sizes matter for the parse endpoint, so the request
// content length is included.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.GetLogger().WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"bytes_in":   c.Request.ContentLength,
			"latency_ms": time.Since(start).Milliseconds(),
			"errors":     c.Errors.String(),
		}).Info("Request processed")
	}
}
