package http

import (
	"github.com/gin-gonic/gin"
	"github.com/scanlens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/scan", handler.SubmitScan)

		session := v1.Group("/session")
		{
			session.GET("", handler.GetSession)
			session.POST("/start", handler.StartSession)
			session.POST("/stop", handler.StopSession)
		}

		v1.GET("/products/:barcode", handler.GetProduct)
		v1.DELETE("/cache", handler.ClearCache)
	}

	return router
}
