package routes

import (
	"github.com/gin-gonic/gin"

	"streetside/internal/interfaces/http/handlers"
	"streetside/internal/interfaces/http/middleware"
	"streetside/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for the admin dashboard routes.
type AdminRouteConfig struct {
	AdminHandler   *handlers.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAdminRoutes configures admin-only routes for vendor decisions and
// session overrides.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		admin.GET("/vendors", cfg.AdminHandler.ListVendors)
		admin.POST("/vendors/:sid/approve", cfg.AdminHandler.Approve)
		admin.POST("/vendors/:sid/reject", cfg.AdminHandler.Reject)
		admin.POST("/vendors/:sid/sessions", cfg.AdminHandler.ForceStart)
		admin.DELETE("/vendors/:sid/sessions/current", cfg.AdminHandler.ForceStop)
	}
}
