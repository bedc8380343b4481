package handlers

import (
	"context"
	"net/http"
	"time"

	"jobi-server/internal/logging"
	"jobi-server/internal/store"
	"jobi-server/pkg/models"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.GetGlobalLogger()
	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID(c)})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports readiness including document store connectivity
func ReadinessHandler(st store.JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()
		logger.Debug("Readiness check requested", map[string]interface{}{"request_id": requestID(c)})

		checks := map[string]string{
			"api":   "ok",
			"store": "ok",
		}
		status := "ready"
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			checks["store"] = "unreachable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler provides detailed service status
func StatusHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "operational",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "operational",
		},
	})
}
