package handlers

import (
	"net/http"
	"time"

	"github.com/iwtcode/velvetpour/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware пишет в лог каждый запрос. Опрос статуса идет на уровне DEBUG,
// чтобы частые запросы панели не забивали лог.
func LoggingMiddleware(parentLogger *logging.Logger) gin.HandlerFunc {
	logger := parentLogger.WithPrefix("HTTP")

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request rejected", fields...)
		case c.Request.Method == http.MethodGet && path == "/api/v1/status":
			logger.Debug("Request completed", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}
