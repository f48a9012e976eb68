package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pricefinder/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		search := v1.Group("/search")
		{
			search.POST("/digikala", handler.SearchDigikala)
			search.POST("/torob", handler.SearchTorob)
			search.POST("/both", handler.SearchBoth)
			search.POST("/more", handler.LoadMore)
		}

		product := v1.Group("/product")
		{
			product.POST("/digikala", handler.GetDigikalaProduct)
			product.POST("/digikala/sellers", handler.GetDigikalaSellers)
			product.POST("/torob", handler.GetTorobProduct)
		}
	}

	return router
}
