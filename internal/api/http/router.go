package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-directory/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Metrics *handlers.MetricsHandler
	Staff   *handlers.StaffHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Counters)

	staff := app.Group("/staff")
	staff.Post("/", cfg.Staff.Register)
	staff.Post("/login", cfg.Staff.Login)
	staff.Post("/password/change", cfg.Staff.ChangePassword)
	staff.Get("/:username", cfg.Staff.Get)
	staff.Patch("/:id", cfg.Staff.ModifyField)
	staff.Delete("/:username", cfg.Staff.Delete)
}
