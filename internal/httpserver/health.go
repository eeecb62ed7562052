package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the status of the service or of one of its checks.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the standard health check response.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of a single named health check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker performs one health check.
type HealthChecker func() CheckResult

// registerHealthRoutes adds GET and HEAD /health handlers.
func registerHealthRoutes(router *gin.Engine, cfg *Config, checks map[string]HealthChecker) {
	startTime := time.Now()

	router.GET("/health", func(c *gin.Context) {
		response := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: cfg.ServiceName,
			Version: cfg.ServiceVersion,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
		}

		if len(checks) > 0 {
			response.Checks = make(map[string]CheckResult, len(checks))
			for name, checker := range checks {
				result := checker()
				response.Checks[name] = result

				switch result.Status {
				case HealthStatusUnhealthy:
					response.Status = HealthStatusUnhealthy
				case HealthStatusDegraded:
					if response.Status == HealthStatusHealthy {
						response.Status = HealthStatusDegraded
					}
				}
			}
		}

		statusCode := http.StatusOK
		if response.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, response)
	})

	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

// PingHealthChecker wraps a ping function into a HealthChecker. Failures
// report the given failure status (use HealthStatusDegraded for backends
// the service can run without).
func PingHealthChecker(ping func() error, failureStatus HealthStatus) HealthChecker {
	return func() CheckResult {
		start := time.Now()
		err := ping()
		latency := time.Since(start).String()

		if err != nil {
			return CheckResult{
				Status:  failureStatus,
				Message: err.Error(),
				Latency: latency,
			}
		}
		return CheckResult{
			Status:  HealthStatusHealthy,
			Latency: latency,
		}
	}
}
