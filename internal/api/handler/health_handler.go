package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready — readiness probe.
// Checks the token store (Redis, when configured) and the hospital backend
// before declaring the portal ready.
type HealthDependenciesHandler struct {
	redis      *redis.Client
	backendURL string
	http       *http.Client
}

func NewHealthDependenciesHandler(rdb *redis.Client, backendURL string) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		redis:      rdb,
		backendURL: backendURL,
		http:       &http.Client{Timeout: 2 * time.Second},
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := map[string]dependencyStatus{
		"token_store": h.checkRedis(ctx),
		"backend":     h.checkBackend(ctx),
	}

	status := "ok"
	code := http.StatusOK
	for _, d := range deps {
		if d.Status == "down" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}

func (h *HealthDependenciesHandler) checkRedis(ctx context.Context) dependencyStatus {
	if h.redis == nil {
		// In-memory token store configured; nothing external to probe.
		return dependencyStatus{Status: "disabled"}
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	return dependencyStatus{Status: "up"}
}

// checkBackend treats any HTTP response as reachable; the portal does not
// assume the backend exposes a health endpoint of its own.
func (h *HealthDependenciesHandler) checkBackend(ctx context.Context) dependencyStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL+"/api/departments", nil)
	if err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	_ = resp.Body.Close()
	return dependencyStatus{Status: "up"}
}
