// Package http assembles the gin engine, middleware stack, and route groups.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streetside/internal/infrastructure/config"
	"streetside/internal/interfaces/http/handlers"
	"streetside/internal/interfaces/http/middleware"
	"streetside/internal/interfaces/http/routes"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/version"
)

// Deps carries the wired handlers and middleware the router needs.
type Deps struct {
	VendorHandler  *handlers.VendorHandler
	SessionHandler *handlers.LiveSessionHandler
	AdminHandler   *handlers.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
	StartLimiter   *middleware.SessionStartLimiter // may be nil when redis is not configured
}

// Router represents the HTTP router configuration
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
	deps   Deps
	logger logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(cfg *config.Config, deps Deps, log logger.Interface) *Router {
	return &Router{
		engine: gin.New(),
		cfg:    cfg,
		deps:   deps,
		logger: log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version.Version,
		})
	})

	api := r.engine.Group("/api/v1")

	routes.SetupVendorRoutes(api, &routes.VendorRouteConfig{
		VendorHandler:  r.deps.VendorHandler,
		SessionHandler: r.deps.SessionHandler,
	})

	routes.SetupSessionRoutes(api, &routes.SessionRouteConfig{
		SessionHandler: r.deps.SessionHandler,
		AuthMiddleware: r.deps.AuthMiddleware,
		StartLimiter:   r.deps.StartLimiter,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		AdminHandler:   r.deps.AdminHandler,
		AuthMiddleware: r.deps.AuthMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
