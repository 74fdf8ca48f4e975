package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-service/internal/api/http/handlers"
	"github.com/spec-kit/social-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Profile         *handlers.ProfileHandler
	AuthMiddleware  *auth.AuthMiddleware
	RegisterLimiter fiber.Handler
	LoginLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.RegisterLimiter == nil {
		cfg.RegisterLimiter = passthrough
	}
	if cfg.LoginLimiter == nil {
		cfg.LoginLimiter = passthrough
	}

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register/", cfg.RegisterLimiter, cfg.Auth.Register)
	authGroup.Post("/login/", cfg.LoginLimiter, cfg.Auth.Login)

	protectedAuth := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protectedAuth.Post("/logout/", cfg.Auth.Logout)
	protectedAuth.Post("/logoutall/", cfg.Auth.LogoutAll)

	profileGroup := app.Group("/api/profile", cfg.AuthMiddleware.Handle)
	profileGroup.Get("/", cfg.Profile.Get)
	profileGroup.Patch("/", cfg.Profile.Update)
}

func passthrough(c *fiber.Ctx) error {
	return c.Next()
}
