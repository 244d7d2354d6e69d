package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ytdl-gateway/api/handlers"
	"github.com/yourusername/ytdl-gateway/api/middleware"
	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/domain"
	"github.com/yourusername/ytdl-gateway/pkg/logger"
)

// SetupRouter sets up the HTTP router. The gateway endpoints accept every
// method so that preflight and 405 answers come from the endpoint itself.
func SetupRouter(
	service *app.GatewayService,
	config *domain.Config,
	logAdapter *logger.LoggerAdapter,
	version string,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.LoggerWithAdapter(logAdapter))
	router.Use(middleware.RecoveryWithAdapter(logAdapter))
	router.Use(middleware.CORS(config.CORS))

	healthHandler := handlers.NewHealthHandler(version)
	router.GET("/health", healthHandler.Health)

	base := router.Group(config.Server.BasePath)
	{
		gatewayHandler := handlers.NewGatewayHandler(service, config.Stream.WindowSize, logAdapter.Gateway())
		base.Any("/video-info", gatewayHandler.VideoInfo)
		base.Any("/download", gatewayHandler.Download)
		base.Any("/stream-download", gatewayHandler.StreamDownload)

		if ml := logAdapter.GetMultiLogger(); ml != nil {
			logHandler := handlers.NewLogHandler(ml.GetLogsDir())
			logs := base.Group("/logs")
			{
				logs.GET("/categories", logHandler.GetCategories)
				logs.GET("/:category", logHandler.GetLogs)
				logs.GET("/:category/search", logHandler.SearchLogs)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.Envelope{Success: false, Error: "Not found"})
	})

	return router
}
