package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/api/respond"
	"github.com/spec-kit/book-catalog/internal/domain"
	"github.com/spec-kit/book-catalog/internal/observability"
)

func newTestApp(t *testing.T, tokens *TokenService) *fiber.App {
	t.Helper()

	table := NewRouteTable([]RouteSpec{
		{Method: fiber.MethodPost, Path: "/api/v1/users/login", Public: true, Handler: func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		}},
		{Method: fiber.MethodGet, Path: "/api/v1/books", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}, Handler: func(c *fiber.Ctx) error {
			identity, ok := IdentityFromContext(c)
			if !ok {
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "identity missing"})
			}
			return c.JSON(fiber.Map{"user_id": identity.UserID})
		}},
	})

	formatter := respond.NewFormatter(zap.NewNop(), observability.NewMetrics())
	m := NewMiddleware(tokens, table, formatter)

	app := fiber.New()
	app.Use(m.Handle)
	for _, spec := range table.Specs() {
		app.Add(spec.Method, spec.Path, spec.Handler)
	}
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp, body
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	tokens := newTestTokenService("mw-secret", 7)
	app := newTestApp(t, tokens)

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/books", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["message"] != "Authentication required. No token provided." {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	tokens := newTestTokenService("mw-secret", 7)
	token, _, err := tokens.Issue(&domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tokens.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	app := newTestApp(t, tokens)

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/books", "Bearer "+token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["message"] != "Token has expired." {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService("other-secret", 7)
	token, _, err := issuer.Issue(&domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := newTestApp(t, newTestTokenService("mw-secret", 7))

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/books", "Bearer "+token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["message"] != "Invalid token." {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestMiddlewareSkipsPublicRoutes(t *testing.T) {
	app := newTestApp(t, newTestTokenService("mw-secret", 7))

	resp, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/users/login", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 without a token on a public route", resp.StatusCode)
	}
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	tokens := newTestTokenService("mw-secret", 7)
	token, _, err := tokens.Issue(&domain.User{ID: "u42", Email: "b@example.com", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := newTestApp(t, tokens)

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/books", "Bearer "+token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["user_id"] != "u42" {
		t.Fatalf("handler saw user_id %v, want u42", body["user_id"])
	}
}

func TestMiddlewareBearerFallback(t *testing.T) {
	tokens := newTestTokenService("mw-secret", 7)
	token, _, err := tokens.Issue(&domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := newTestApp(t, tokens)

	// Bare token without the Bearer scheme still authenticates.
	resp, _ := doRequest(t, app, fiber.MethodGet, "/api/v1/books", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bare-token status = %d, want 200", resp.StatusCode)
	}

	// A lone "Bearer" is treated as the credential and fails verification.
	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/books", "Bearer")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("lone-Bearer status = %d, want 401", resp.StatusCode)
	}
	if body["message"] != "Invalid token." {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestMiddlewareUnknownRoutePrecedence(t *testing.T) {
	tokens := newTestTokenService("mw-secret", 7)
	token, _, err := tokens.Issue(&domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := newTestApp(t, tokens)

	// Without a token an unknown path is still challenged: 401 wins over 404.
	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/nope", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 before route resolution", resp.StatusCode)
	}
	if body["message"] != "Authentication required. No token provided." {
		t.Fatalf("message = %q", body["message"])
	}

	// With a valid token the request proceeds to normal 404 handling.
	resp, _ = doRequest(t, app, fiber.MethodGet, "/api/v1/nope", "Bearer "+token)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 with valid token", resp.StatusCode)
	}
}

func TestMiddlewareExemptPaths(t *testing.T) {
	app := newTestApp(t, newTestTokenService("mw-secret", 7))

	// Preflight and infrastructure prefixes bypass auth entirely; the
	// 404 comes from routing, never a 401 from the middleware.
	for _, tc := range []struct{ method, path string }{
		{fiber.MethodOptions, "/api/v1/books"},
		{fiber.MethodGet, "/swagger/index.html"},
		{fiber.MethodGet, "/static/app.css"},
		{fiber.MethodGet, "/admin/users"},
	} {
		resp, _ := doRequest(t, app, tc.method, tc.path, "")
		if resp.StatusCode == http.StatusUnauthorized {
			t.Errorf("%s %s was challenged for auth", tc.method, tc.path)
		}
	}
}

func TestExtractCredential(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"abc123", "abc123"},
		{"Bearer", "Bearer"},
		{"Bearer a b", "Bearer a b"},
		{"Token abc123", "Token abc123"},
	}
	for _, tc := range cases {
		if got := extractCredential(tc.header); got != tc.want {
			t.Errorf("extractCredential(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
