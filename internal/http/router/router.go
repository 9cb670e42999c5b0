package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/config"
	"github.com/imovelhub/crm-api/internal/database"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/http/handler"
	"github.com/imovelhub/crm-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/imovelhub/crm-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	authHandler      *handler.AuthHandler
	dashboardHandler *handler.DashboardHandler
	leadHandler      *handler.LeadHandler
	userHandler      *handler.UserHandler
	areaHandler      *handler.AreaHandler
	companyHandler   *handler.CompanyHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	leadHandler *handler.LeadHandler,
	userHandler *handler.UserHandler,
	areaHandler *handler.AreaHandler,
	companyHandler *handler.CompanyHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		dashboardHandler: dashboardHandler,
		leadHandler:      leadHandler,
		userHandler:      userHandler,
		areaHandler:      areaHandler,
		companyHandler:   companyHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.Post("/auth/logout", rt.authHandler.Logout)

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.GetDashboard)
			r.Post("/dashboard/heartbeat", rt.dashboardHandler.Heartbeat)

			// Leads
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", rt.leadHandler.List)
				r.Post("/", rt.leadHandler.Create)
				r.Put("/{id}/status", rt.leadHandler.UpdateStatus)
			})

			// Users
			r.Route("/users", func(r chi.Router) {
				r.Get("/", rt.userHandler.List)
				r.Get("/{id}", rt.userHandler.GetByID)
				r.Delete("/{id}", rt.userHandler.Deactivate)

				// Only managers and above create accounts
				r.With(rt.authMiddleware.RequireManager).Post("/", rt.userHandler.Create)
			})

			// Areas
			r.Route("/areas", func(r chi.Router) {
				r.Get("/", rt.areaHandler.List)
				r.With(rt.authMiddleware.RequireLevel(domain.AccessDirector)).Post("/", rt.areaHandler.Create)
			})

			// Companies
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", rt.companyHandler.List)
				r.Get("/{id}", rt.companyHandler.GetByID)
				r.With(rt.authMiddleware.RequireLevel(domain.AccessSuperAdmin)).Post("/", rt.companyHandler.Create)
			})
		})
	})

	return r
}
