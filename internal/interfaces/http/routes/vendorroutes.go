// Package routes wires HTTP handlers into gin route groups.
package routes

import (
	"github.com/gin-gonic/gin"

	"streetside/internal/interfaces/http/handlers"
)

// VendorRouteConfig holds dependencies for the public vendor routes.
type VendorRouteConfig struct {
	VendorHandler  *handlers.VendorHandler
	SessionHandler *handlers.LiveSessionHandler
}

// SetupVendorRoutes configures the public vendor surface: registration, the
// status view, and the discovery feed. No authentication required.
func SetupVendorRoutes(api *gin.RouterGroup, cfg *VendorRouteConfig) {
	vendors := api.Group("/vendors")
	{
		vendors.POST("", cfg.VendorHandler.Register)
		vendors.GET("/:sid/status", cfg.VendorHandler.GetStatus)
	}

	api.GET("/sessions/active", cfg.SessionHandler.ListActive)
}
