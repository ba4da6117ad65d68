package transport

import (
	"time"

	"github.com/ds124wfegd/WB_L3/6/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(creativeHandler *CreativeHandler, renderTimeout time.Duration) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	api := router.Group("/api")
	{
		creatives := api.Group("/creatives")
		{
			creatives.POST("/render", middleware.Timeout(renderTimeout), creativeHandler.RenderCreative)
			creatives.POST("", creativeHandler.SubmitCreative)
			creatives.GET("/:id", creativeHandler.GetCreative)
			creatives.GET("/:id/download", creativeHandler.DownloadCreative)
			creatives.DELETE("/:id", creativeHandler.DeleteCreative)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "creative-service",
		})
	})
	return router
}
