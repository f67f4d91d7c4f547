package router

import (
	"log/slog"

	"github.com/cloudwego/hertz/pkg/route"
	"github.com/hertz-contrib/swagger"
	swaggerFiles "github.com/swaggo/files"

	"github.com/lvyanru/chat-history/internal/handler"
	"github.com/lvyanru/chat-history/internal/middleware"
)

// Setup sets up all routes
func Setup(
	engine *route.Engine,
	logger *slog.Logger,
	userHandler *handler.UserHandler,
	historyHandler *handler.HistoryHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.CORS())

	// Swagger API documentation
	// Access at: http://localhost:8080/swagger/index.html
	engine.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler))

	// Health check routes (no authentication required)
	engine.GET("/ping", healthHandler.Ping)
	engine.GET("/health/ready", healthHandler.Readiness)
	engine.GET("/health/live", healthHandler.Liveness)

	// API v1 routes
	apiV1 := engine.Group("/api/v1")
	{
		// ============ Public routes (no authentication required) ============
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
		}

		// ============ Protected routes (JWT authentication required) ============
		authorized := apiV1.Group("")
		authorized.Use(userHandler.AuthMiddleware())
		{
			authorized.GET("/users/me", userHandler.GetCurrentUser)

			// Chat history of the authenticated user
			authorized.POST("/chat/history", historyHandler.GetHistory)
		}
	}
}
