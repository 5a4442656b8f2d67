// Package server implements the HTTP server command.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	adminApp "streetside/internal/application/admin"
	sessionApp "streetside/internal/application/livesession"
	vendorApp "streetside/internal/application/vendorstatus"
	"streetside/internal/infrastructure/auth"
	"streetside/internal/infrastructure/config"
	"streetside/internal/infrastructure/database"
	"streetside/internal/infrastructure/email"
	"streetside/internal/infrastructure/geocoder"
	"streetside/internal/infrastructure/migration"
	"streetside/internal/infrastructure/ratelimit"
	"streetside/internal/infrastructure/repository"
	httpRouter "streetside/internal/interfaces/http"
	"streetside/internal/interfaces/http/handlers"
	"streetside/internal/interfaces/http/middleware"
	"streetside/internal/shared/biztime"
	"streetside/internal/shared/db"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/services/sanitize"
	"streetside/internal/shared/version"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Streetside HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, ginMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"version", version.Version,
		"auto_migrate", autoMigrate,
	)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment, this is not recommended")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	vendorRepo := repository.NewVendorRepository(gormDB, log)
	sessionRepo := repository.NewLiveSessionRepository(gormDB, log)
	auditSink := repository.NewAuditLogRepository(gormDB, log)

	sanitizer := sanitize.New()

	vendorService := vendorApp.NewService(vendorRepo, sessionRepo, txManager, sanitizer, log)
	if mailer := email.NewSMTPDecisionMailer(cfg.Email); mailer != nil {
		vendorService.SetDecisionNotifier(mailer)
		log.Infow("decision notifications enabled", "notify_address", cfg.Email.NotifyAddress)
	}

	geo := geocoder.NewNominatimGeocoder(&cfg.Geocoder, log)

	sessionService := sessionApp.NewService(
		vendorRepo,
		sessionRepo,
		txManager,
		geo,
		cfg.Vendor.ApprovalRequired(),
		log,
	)

	adminService := adminApp.NewService(vendorService, sessionService, auditSink, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)
	startLimiter := buildStartLimiter(cfg, log)

	deps := httpRouter.Deps{
		VendorHandler:  handlers.NewVendorHandler(vendorService, log),
		SessionHandler: handlers.NewLiveSessionHandler(sessionService, log),
		AdminHandler:   handlers.NewAdminHandler(adminService, vendorService, log),
		AuthMiddleware: authMiddleware,
		StartLimiter:   startLimiter,
	}

	router := httpRouter.NewRouter(cfg, deps, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// buildStartLimiter connects to redis and builds the per-vendor session start
// limiter. Returns nil when redis is unreachable; the middleware is skipped
// and session starts are unthrottled rather than broken.
func buildStartLimiter(cfg *config.Config, log logger.Interface) *middleware.SessionStartLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("redis unavailable, session start rate limiting disabled",
			"addr", cfg.Redis.GetAddr(),
			"error", err,
		)
		client.Close()
		return nil
	}

	limiter := ratelimit.NewRedisRateLimiter(client)
	limitCfg := ratelimit.LimitConfig{
		RequestsPerMinute: cfg.RateLimit.SessionStartPerMinute,
		RequestsPerHour:   cfg.RateLimit.SessionStartPerHour,
	}

	return middleware.NewSessionStartLimiter(limiter, limitCfg, log)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
