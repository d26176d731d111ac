package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ursa-team/ursa-go-api/internal/config"
	"github.com/ursa-team/ursa-go-api/internal/handler"
	"github.com/ursa-team/ursa-go-api/internal/middleware"
	"github.com/ursa-team/ursa-go-api/internal/observability"
	"github.com/ursa-team/ursa-go-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AchievementHandler *handler.AchievementHandler
	ReviewHandler      *handler.ReviewHandler
	StudentHandler     *handler.StudentHandler
	JWTMiddleware      fiber.Handler
	SubmitLimiter      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AchievementHandler != nil {
		achievements := app.Group("/api/v1/achievements", jwtMiddleware)
		deps.AchievementHandler.Register(achievements, deps.SubmitLimiter)

		if deps.ReviewHandler != nil {
			reviews := app.Group("/api/v1/achievements", jwtMiddleware,
				middleware.RequireRole(service.RoleTeacher, service.RoleAdmin))
			deps.ReviewHandler.Register(reviews)
		}
	}

	if deps.StudentHandler != nil {
		students := app.Group("/api/v1/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
	}
}
