package auth

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/domain"
)

func testRouteTable() *RouteTable {
	noop := func(c *fiber.Ctx) error { return nil }
	return NewRouteTable([]RouteSpec{
		{Method: fiber.MethodPost, Path: "/api/v1/users", Public: true, Handler: noop},
		{Method: fiber.MethodGet, Path: "/api/v1/users", Roles: []domain.Role{domain.RoleAdmin}, Handler: noop},
		{Method: fiber.MethodGet, Path: "/api/v1/books/google", Handler: noop},
		{Method: fiber.MethodGet, Path: "/api/v1/books/:book_id", Handler: noop},
	})
}

func TestRouteTableMatchResolvesParams(t *testing.T) {
	table := testRouteTable()

	spec, ok := table.Match(fiber.MethodGet, "/api/v1/books/42")
	if !ok {
		t.Fatal("expected match for path-parameter route")
	}
	if spec.Path != "/api/v1/books/:book_id" {
		t.Fatalf("matched %q, want the :book_id route", spec.Path)
	}

	spec, ok = table.Match(fiber.MethodGet, "/api/v1/books/google")
	if !ok || spec.Path != "/api/v1/books/google" {
		t.Fatal("literal segment must win over :book_id")
	}
}

func TestRouteTableVisibilityIsPerMethod(t *testing.T) {
	table := testRouteTable()

	if !table.IsPublic(fiber.MethodPost, "/api/v1/users") {
		t.Error("POST /api/v1/users should be public")
	}
	if table.IsPublic(fiber.MethodGet, "/api/v1/users") {
		t.Error("GET /api/v1/users must not inherit POST's visibility")
	}
}

func TestRouteTableFailsClosed(t *testing.T) {
	table := testRouteTable()

	for _, path := range []string{
		"/api/v1/unknown",
		"/api/v1/books/42/extra",
		"/",
		"/api/v1/books/",
	} {
		if table.IsPublic(fiber.MethodGet, path) {
			t.Errorf("unresolved path %q classified public", path)
		}
	}
}
