package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gameshelf/config"
)

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health returns the health status of the named service
func Health(service string) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Service:   service,
			Checks:    make(map[string]HealthCheck),
		}

		// Check database connection
		if err := config.HealthCheck(); err != nil {
			response.Checks["database"] = HealthCheck{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			response.Status = "unhealthy"
		} else {
			response.Checks["database"] = HealthCheck{
				Status: "healthy",
			}
		}

		// Return appropriate status code
		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		return c.JSON(statusCode, response)
	}
}

// Readiness checks if the service is ready to accept traffic
func Readiness(c echo.Context) error {
	// Check if database is accessible
	if err := config.HealthCheck(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"ready":   false,
			"message": "Database not ready",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ready": true,
	})
}

// Liveness checks if the service is alive
func Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"alive": true,
	})
}
