package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/api/http/handlers"
	"github.com/spec-kit/book-catalog/internal/auth"
	"github.com/spec-kit/book-catalog/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Books  *handlers.BooksHandler
}

// BuildRouteTable declares every route with its visibility and required
// roles. This single table drives both registration and the auth
// middleware's classification, so the two cannot drift. Routes are
// protected unless explicitly marked public.
func BuildRouteTable(cfg RouteConfig) *auth.RouteTable {
	adminOnly := []domain.Role{domain.RoleAdmin}
	anyRole := []domain.Role{domain.RoleAdmin, domain.RoleManager}

	return auth.NewRouteTable([]auth.RouteSpec{
		{Method: fiber.MethodGet, Path: "/health/live", Public: true, Handler: cfg.Health.Live},
		{Method: fiber.MethodGet, Path: "/health/ready", Public: true, Handler: cfg.Health.Ready},

		{Method: fiber.MethodPost, Path: "/api/v1/users", Public: true, Handler: cfg.Users.Register},
		{Method: fiber.MethodPost, Path: "/api/v1/users/login", Public: true, Handler: cfg.Users.Login},
		{Method: fiber.MethodGet, Path: "/api/v1/users", Roles: adminOnly, Handler: cfg.Users.List},
		{Method: fiber.MethodGet, Path: "/api/v1/users/:user_id", Roles: anyRole, Handler: cfg.Users.GetByID},
		{Method: fiber.MethodDelete, Path: "/api/v1/users/:user_id", Roles: adminOnly, Handler: cfg.Users.Delete},

		{Method: fiber.MethodGet, Path: "/api/v1/books", Roles: anyRole, Handler: cfg.Books.List},
		{Method: fiber.MethodPost, Path: "/api/v1/books", Roles: adminOnly, Handler: cfg.Books.Create},
		{Method: fiber.MethodGet, Path: "/api/v1/books/google", Roles: anyRole, Handler: cfg.Books.SearchGoogle},
		{Method: fiber.MethodGet, Path: "/api/v1/books/:book_id", Roles: anyRole, Handler: cfg.Books.GetByID},
		{Method: fiber.MethodPatch, Path: "/api/v1/books/:book_id", Roles: adminOnly, Handler: cfg.Books.Update},
		{Method: fiber.MethodDelete, Path: "/api/v1/books/:book_id", Roles: adminOnly, Handler: cfg.Books.Delete},
	})
}

// RegisterRoutes wires the auth middleware and every declared route into
// the app. The middleware is attached first so it runs for all routes,
// including paths that do not resolve.
func RegisterRoutes(app *fiber.App, table *auth.RouteTable, authMiddleware *auth.Middleware) {
	app.Use(authMiddleware.Handle)

	for _, spec := range table.Specs() {
		chain := make([]fiber.Handler, 0, 2)
		if len(spec.Roles) > 0 {
			chain = append(chain, auth.RequireRoles(spec.Roles...))
		}
		chain = append(chain, spec.Handler)
		app.Add(spec.Method, spec.Path, chain...)
	}
}
