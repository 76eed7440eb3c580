package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/asdos-web/internal/config"
	"github.com/noah-isme/asdos-web/internal/handler"
	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	AdminHandler    *handler.AdminHandler
	StudentHandler  *handler.StudentHandler
	LecturerHandler *handler.LecturerHandler
	Guard           fiber.Handler
}

// Register wires the HTTP routes into the fiber application. The guard runs
// before every dashboard route and decides by path prefix.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())
	app.Get(middleware.UnauthorizedPath, handler.Unauthorized())

	if deps.Guard != nil {
		app.Use(deps.Guard)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(app.Group("/auth"))
	}

	dashboard := app.Group("/dashboard")
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(dashboard.Group("/admin"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(dashboard.Group("/mahasiswa"))
	}
	if deps.LecturerHandler != nil {
		deps.LecturerHandler.Register(dashboard.Group("/dosen"))
	}
}
