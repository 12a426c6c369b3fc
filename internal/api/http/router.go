package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Technicians    *handlers.TechniciansHandler
	Metrics        *observability.Metrics
	AuthMiddleware fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	users := app.Group("/users", cfg.AuthMiddleware)

	// technician routes first so "technicians" is never read as a user id
	viewers := auth.RequireRole(auth.TechnicianViewers...)
	users.Get("/technicians", viewers, cfg.Technicians.ListTechnicians)
	users.Get("/technicians/:id/stats", viewers, cfg.Technicians.TechnicianStats)

	admins := auth.RequireRole(auth.UserAdministrators...)
	users.Get("/", admins, cfg.Users.ListUsers)
	users.Get("/:id", admins, cfg.Users.GetUser)
	users.Put("/:id", admins, cfg.Users.UpdateUser)
	users.Delete("/:id", admins, cfg.Users.DeleteUser)
	users.Post("/:id/reset-password", admins, cfg.Users.ResetPassword)
}
