package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-directory/internal/persistence"
)

const dependencyProbeTimeout = 2 * time.Second

// HealthHandler responds to liveness and readiness probes for the directory
// and its two backing stores.
type HealthHandler struct {
	serviceName string
	version     string
	startedAt   time.Time
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		startedAt:   time.Now(),
		postgres:    postgres,
		redis:       redis,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness. The directory cannot serve lifecycle operations
// without postgres; redis only backs the login throttle, so its state is
// reported but degrades rather than fails readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), dependencyProbeTimeout)
	defer cancel()

	deps := fiber.Map{}
	status := "ready"

	if err := h.postgres.Ping(ctx); err != nil {
		deps["postgres"] = err.Error()
		status = "unavailable"
	} else {
		deps["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		deps["redis"] = err.Error()
		if status == "ready" {
			status = "degraded"
		}
	} else {
		deps["redis"] = "ok"
	}

	if status == "unavailable" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DATA_STORE_UNAVAILABLE",
				"message": "staff directory cannot reach its data store",
				"details": deps,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"service":      h.serviceName,
		"dependencies": deps,
	})
}
