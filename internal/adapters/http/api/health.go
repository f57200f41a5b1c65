package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/pkg/metrics"
)

// HealthDependencies reports process health.
type HealthDependencies interface {
	Health(ctx context.Context) service.Health
}

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	deps    HealthDependencies
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /health. An unhealthy store answers 503 with the
// same body so probes can read the reason.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := h.deps.Health(r.Context())
	status := http.StatusOK
	if !health.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

// HandleMetrics serves the private Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
