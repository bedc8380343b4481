package routes

import (
	"jobi-server/internal/api/handlers"
	"jobi-server/internal/api/middleware"
	"jobi-server/internal/auth"
	"jobi-server/internal/config"
	"jobi-server/internal/jobs"
	"jobi-server/internal/store"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, st store.JobStore, gateway *auth.Gateway) {
	poster := jobs.NewPoster(st)
	moderator := jobs.NewModerator(st)
	submitLimiter := middleware.NewSubmissionLimiter(cfg.Submissions.RateLimit, cfg.Submissions.Burst)

	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation(cfg.Submissions.MaxBody))
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))
	e.Use(middleware.ResolveSession(gateway))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(st))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler)

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Public listing and posting form
		v1.GET("/jobs", handlers.ListJobsHandler(st))
		v1.GET("/jobs/facets", handlers.JobFacetsHandler(st))
		v1.POST("/jobs", handlers.SubmitJobHandler(poster), submitLimiter.Middleware())

		// Session routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", handlers.LoginHandler(gateway))
			authGroup.GET("/session", handlers.SessionHandler())
		}

		// Moderation dashboard, admin only
		admin := v1.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/jobs", handlers.AdminListJobsHandler(st))
			admin.GET("/jobs/stats", handlers.AdminStatsHandler(st))
			admin.POST("/jobs/:id/approve", handlers.ApproveJobHandler(moderator))
			admin.POST("/jobs/:id/reject", handlers.RejectJobHandler(moderator))
			admin.POST("/jobs/approve", handlers.BulkApproveHandler(moderator))
			admin.POST("/jobs/reject", handlers.BulkRejectHandler(moderator))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "Jobi Job Board",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
