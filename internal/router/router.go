package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "narrabridge/docs"
	"narrabridge/internal/auth"
	"narrabridge/internal/handler"
	"narrabridge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	validator auth.Validator,
	allowedOrigins []string,
	dispatchH *handler.DispatchHandler,
	runH *handler.RunHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid API token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))

	protected.POST("/dispatch/:variant", dispatchH.Dispatch)

	runs := protected.Group("/runs")
	runs.GET("", runH.List)
	runs.GET("/:id", runH.GetByID)

	return r
}
