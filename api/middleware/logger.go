package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/pkg/logger"
)

// Logger returns a gin middleware for logging
func Logger(log *zap.Logger) gin.HandlerFunc {
	return LoggerWithAdapter(logger.NewSingleLoggerAdapter(log))
}

// LoggerWithAdapter returns a gin middleware for logging using LoggerAdapter.
// The entry is written even when the handler aborts the connection.
func LoggerWithAdapter(logAdapter *logger.LoggerAdapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		defer func() {
			statusCode := c.Writer.Status()
			fields := []zap.Field{
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.String("query", query),
				zap.Int("status", statusCode),
				zap.Int("bytes", c.Writer.Size()),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.ClientIP()),
				zap.String("user_agent", c.Request.UserAgent()),
			}

			logAdapter.Access().Info("HTTP request", fields...)
			if statusCode >= 500 {
				logAdapter.LogAppError("HTTP error response", fields...)
			}
		}()

		c.Next()
	}
}
