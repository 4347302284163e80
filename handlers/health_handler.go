package handlers

import (
	"net/http"
	"time"

	"github.com/upb/external-knowledge-api/app"
	"github.com/upb/external-knowledge-api/services/knowledge"
	"github.com/upb/external-knowledge-api/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	defaultRegion  string
	authConfigured bool
	logger         *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(defaultRegion string, authConfigured bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		defaultRegion:  defaultRegion,
		authConfigured: authConfigured,
		logger:         logger,
	}
}

// HealthCheck returns the liveness handler wired from deps
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return newHealthHandler(deps).HandleHealth
}

// ReadinessCheck returns the readiness handler wired from deps
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return newHealthHandler(deps).HandleReadiness
}

func newHealthHandler(deps *app.Dependencies) *HealthHandler {
	return NewHealthHandler(deps.Retrieval.DefaultRegion(), deps.AuthConfigured(), deps.Logger)
}

// HandleHealth handles GET /healthz
// Always returns 200 while the process is serving
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// Not ready while no bearer token is configured, since every retrieval would be rejected.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	region := h.defaultRegion
	if region == "" {
		region = knowledge.SDKDefaultRegion
	}
	checks := map[string]string{
		"default_region": region,
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if h.authConfigured {
		checks["bearer_token"] = "configured"
	} else {
		checks["bearer_token"] = "missing"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, response); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}
