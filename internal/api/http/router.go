package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-service/internal/api/http/handlers"
	"github.com/spec-kit/tenant-service/internal/auth"
	"github.com/spec-kit/tenant-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Organizations  *handlers.OrganizationsHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/all", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)

	orgs := app.Group("/organizations", cfg.AuthMiddleware.Handle)
	orgs.Post("", cfg.Organizations.Create)
	orgs.Get("", cfg.Organizations.List)
	orgs.Get("/:id", cfg.Organizations.Get)
	orgs.Put("/:id", cfg.Organizations.Update)
	orgs.Delete("/:id", cfg.Organizations.Delete)
	orgs.Post("/:id/products", cfg.Products.Create)
	orgs.Get("/:id/products", cfg.Products.ListByOrganization)

	products := app.Group("/products", cfg.AuthMiddleware.Handle)
	products.Get("/:id", cfg.Products.Get)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)
}
