package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-directory/internal/observability"
)

// MetricsHandler reports the in-memory request and error counters.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler returns a new handler instance.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Counters handles GET /metrics.
func (h *MetricsHandler) Counters(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
	})
}
