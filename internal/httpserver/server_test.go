package httpserver_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharecom5/TBM/internal/httpserver"
	"github.com/Sharecom5/TBM/internal/logger"
)

func newTestServer(t *testing.T, checks map[string]httpserver.HealthChecker, setupRoutes func(*gin.Engine)) *httpserver.Server {
	t.Helper()
	cfg := &httpserver.Config{
		Port:           8080,
		ServiceName:    "tbm-test",
		ServiceVersion: "test",
	}
	return httpserver.New(cfg, logger.NewNopLogger(), checks, setupRoutes)
}

func serve(srv *httpserver.Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp httpserver.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, httpserver.HealthStatusHealthy, resp.Status)
	assert.Equal(t, "tbm-test", resp.Service)
	assert.Equal(t, "test", resp.Version)
}

func TestHealthHead(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := serve(srv, httptest.NewRequest(http.MethodHead, "/health", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthDegradedCheck(t *testing.T) {
	checks := map[string]httpserver.HealthChecker{
		"redis": httpserver.PingHealthChecker(func() error {
			return errors.New("connection refused")
		}, httpserver.HealthStatusDegraded),
	}
	srv := newTestServer(t, checks, nil)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	// Degraded still serves traffic.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp httpserver.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, httpserver.HealthStatusDegraded, resp.Status)
	require.Contains(t, resp.Checks, "redis")
	assert.Equal(t, httpserver.HealthStatusDegraded, resp.Checks["redis"].Status)
	assert.Equal(t, "connection refused", resp.Checks["redis"].Message)
}

func TestHealthUnhealthyCheck(t *testing.T) {
	checks := map[string]httpserver.HealthChecker{
		"upstream": httpserver.PingHealthChecker(func() error {
			return errors.New("down")
		}, httpserver.HealthStatusUnhealthy),
	}
	srv := newTestServer(t, checks, nil)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	srv := newTestServer(t, nil, func(router *gin.Engine) {
		router.GET("/echo", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("request_id"))
		})
	})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/echo", http.NoBody))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/echo", http.NoBody)
	req.Header.Set("X-Request-ID", "inbound-id")
	w = serve(srv, req)
	assert.Equal(t, "inbound-id", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "inbound-id", w.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := newTestServer(t, nil, func(router *gin.Engine) {
		router.GET("/panic", func(c *gin.Context) {
			panic("boom")
		})
	})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/panic", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestCORSMiddlewareAllowsConfiguredOrigin(t *testing.T) {
	cfg := &httpserver.Config{
		Port:        8080,
		ServiceName: "tbm-test",
		CORS: httpserver.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"https://thebharatmirror.com"},
		},
	}
	srv := httpserver.New(cfg, logger.NewNopLogger(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://thebharatmirror.com")
	w := serve(srv, req)

	assert.Equal(t, "https://thebharatmirror.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(srv, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	cfg := &httpserver.Config{
		Port:        8080,
		ServiceName: "tbm-test",
		CORS:        httpserver.CORSConfig{Enabled: true},
	}
	srv := httpserver.New(cfg, logger.NewNopLogger(), nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/health", http.NoBody)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := serve(srv, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "OPTIONS")
}

func TestCORSMiddlewareDisabled(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := serve(srv, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
