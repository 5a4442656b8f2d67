package routes

import (
	"github.com/gin-gonic/gin"

	"streetside/internal/interfaces/http/handlers"
	"streetside/internal/interfaces/http/middleware"
	"streetside/internal/shared/authorization"
)

// SessionRouteConfig holds dependencies for vendor self-service session routes.
type SessionRouteConfig struct {
	SessionHandler *handlers.LiveSessionHandler
	AuthMiddleware *middleware.AuthMiddleware
	StartLimiter   *middleware.SessionStartLimiter // may be nil when redis is not configured
}

// SetupSessionRoutes configures vendor self-service session routes. The
// target vendor is always the authenticated actor.
func SetupSessionRoutes(api *gin.RouterGroup, cfg *SessionRouteConfig) {
	sessions := api.Group("/sessions")
	sessions.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireVendor())
	{
		if cfg.StartLimiter != nil {
			sessions.POST("", cfg.StartLimiter.Limit(), cfg.SessionHandler.Start)
		} else {
			sessions.POST("", cfg.SessionHandler.Start)
		}
		sessions.GET("/current", cfg.SessionHandler.Current)
		sessions.DELETE("/current", cfg.SessionHandler.Stop)
		sessions.GET("/history", cfg.SessionHandler.History)
	}
}
