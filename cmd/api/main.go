package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imovelhub/crm-api/docs"
	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/config"
	"github.com/imovelhub/crm-api/internal/database"
	"github.com/imovelhub/crm-api/internal/http/handler"
	"github.com/imovelhub/crm-api/internal/http/middleware"
	"github.com/imovelhub/crm-api/internal/http/router"
	"github.com/imovelhub/crm-api/internal/jobs"
	"github.com/imovelhub/crm-api/internal/logger"
	"github.com/imovelhub/crm-api/internal/presence"
	"github.com/imovelhub/crm-api/internal/repository"
	"github.com/imovelhub/crm-api/internal/service"
	"github.com/imovelhub/crm-api/internal/warehouse"
	"go.uber.org/zap"
)

// @title ImovelHub CRM API
// @version 1.0
// @description Multi-tenant real estate CRM with access-scoped dashboards, lead funnel tracking and seller performance rankings
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email suporte@imovelhub.com.br

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "api-staging.imovelhub.com.br"
	case "production":
		docs.SwaggerInfo.Host = "api.imovelhub.com.br"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis backs seller presence tracking
	redisClient, err := presence.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()
	tracker := presence.NewTracker(redisClient, cfg.Redis.PresenceTTLDuration())

	// Legacy CRM warehouse connection (optional - feeds the lead import job)
	var whClient *warehouse.Client
	if cfg.Warehouse.Enabled {
		whClient, err = warehouse.NewClient(&cfg.Warehouse, log)
		if err != nil {
			// The warehouse is optional; the API runs without imports.
			log.Warn("Warehouse connection failed, continuing without lead imports",
				zap.Error(err),
			)
		}
	} else {
		log.Info("Warehouse not configured, skipping lead imports")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	playbookRepo := repository.NewPlaybookRepository(db)
	dashboardSource := repository.NewDashboardSource(leadRepo, userRepo, areaRepo, conversationRepo, playbookRepo, tracker)

	// Initialize services
	tokens := auth.NewTokenManager(&cfg.JWT)
	authService := service.NewAuthService(userRepo, companyRepo, tokens, log)
	userService := service.NewUserService(userRepo, companyRepo, areaRepo, log)
	leadService := service.NewLeadService(leadRepo, userRepo, log)
	dashboardService := service.NewDashboardService(dashboardSource, tracker, log)
	areaService := service.NewAreaService(areaRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, tokens, userService, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, tracker, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	userHandler := handler.NewUserHandler(userService, log)
	areaHandler := handler.NewAreaHandler(areaService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		dashboardHandler,
		leadHandler,
		userHandler,
		areaHandler,
		companyHandler,
	)

	// Start the scheduler when the warehouse is reachable
	var scheduler *jobs.Scheduler
	if whClient.IsEnabled() {
		scheduler = jobs.NewScheduler(log)

		leadSyncService := service.NewLeadSyncService(whClient, leadRepo, userRepo, log)
		if err := jobs.RegisterLeadSyncJob(
			scheduler,
			leadSyncService,
			log,
			cfg.Warehouse.SyncSchedule,
			cfg.Warehouse.QueryTimeoutDuration(),
			true, // import immediately on startup
		); err != nil {
			log.Error("Failed to register lead sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with lead sync job",
				zap.String("cron_expr", cfg.Warehouse.SyncSchedule),
			)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := whClient.Close(); err != nil {
			log.Warn("Error closing warehouse connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
