package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for account and token routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupUserRoutes configures registration, login and the current user route.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	engine.POST("/token", cfg.RateLimiter.Limit("token"), cfg.AuthHandler.Token)

	users := engine.Group("/users")
	{
		users.POST("", cfg.RateLimiter.Limit("register"), cfg.UserHandler.Register)
		users.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.UserHandler.GetCurrentUser)
	}
}
