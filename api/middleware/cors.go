package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// CORS returns a gin middleware that sets the configured CORS headers on
// every response and answers preflight requests with an empty 200.
func CORS(config domain.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", config.AllowOrigin)
		h.Set("Access-Control-Allow-Headers", config.AllowHeaders)
		h.Set("Access-Control-Allow-Methods", config.AllowMethods)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
