package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobi-server/internal/api/routes"
	"jobi-server/internal/auth"
	"jobi-server/internal/config"
	"jobi-server/internal/logging"
	"jobi-server/internal/store/redisjobs"
	"jobi-server/pkg/models"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting Jobi job board server")

	if cfg.Auth.SessionSecret == "" {
		logger.Fatal("SESSION_SECRET is required")
	}
	if len(cfg.Auth.AdminEmails) == 0 {
		logger.Warn("No admin emails configured; moderation dashboard is unreachable")
	}

	// Document store gateway, owned here and injected everywhere else
	jobStore, err := redisjobs.New(cfg)
	if err != nil {
		logger.Fatal("Failed to construct job store", map[string]interface{}{"error": err.Error()})
	}
	defer jobStore.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	if err := jobStore.Ping(pingCtx); err != nil {
		logger.Warn("Document store unreachable at startup", map[string]interface{}{"error": err.Error()})
	}
	cancelPing()

	// Identity gateway with a session observer for audit logging; the
	// subscription is released on shutdown
	identity := auth.NewGateway(cfg)
	unsubscribe := identity.Subscribe(func(user *models.User) {
		logger.Info("Session established", map[string]interface{}{
			"user_id": user.ID,
		})
	})
	defer unsubscribe()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, jobStore, identity)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if err := jobStore.Close(); err != nil {
			logger.Error("Error closing job store", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
		logging.CloseLogging()
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
