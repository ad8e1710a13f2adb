package http

import (
	"github.com/gin-gonic/gin"
	"github.com/labellens/backend/config"
	"github.com/labellens/backend/internal/infrastructure/logging"
	"github.com/labellens/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, metrics *telemetry.Metrics, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger)

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Operational endpoints are not rate limited
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		labels := v1.Group("/labels")
		{
			labels.POST("/analyze", handler.AnalyzeLabel)
			labels.POST("/analyze-text", handler.AnalyzeText)
		}
		v1.GET("/keywords", handler.Keywords)
	}

	return router
}
