package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/pkg/logger"
)

// Recovery returns a gin middleware for panic recovery
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return RecoveryWithAdapter(logger.NewSingleLoggerAdapter(log))
}

// RecoveryWithAdapter returns a gin middleware for panic recovery using
// LoggerAdapter. http.ErrAbortHandler is re-raised so the server drops the
// connection instead of completing the response.
func RecoveryWithAdapter(logAdapter *logger.LoggerAdapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			logAdapter.LogAppError("Panic recovered",
				zap.Any("error", err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("client_ip", c.ClientIP()),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error",
			})
		}()
		c.Next()
	}
}
