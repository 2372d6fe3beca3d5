package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/api/respond"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// exemptPrefixes are infrastructure paths never subject to token checks:
// administrative UI, static assets and interactive API docs.
var exemptPrefixes = []string{"/admin", "/static", "/media", "/swagger", "/redoc"}

// Middleware enforces authentication for every non-exempt, non-public
// route. It runs before routing, so unknown protected paths still get
// 401 rather than 404 when no valid token is present.
type Middleware struct {
	tokens    *TokenService
	routes    *RouteTable
	formatter *respond.Formatter
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenService, routes *RouteTable, formatter *respond.Formatter) *Middleware {
	return &Middleware{tokens: tokens, routes: routes, formatter: formatter}
}

// Handle classifies the request, verifies the bearer credential and
// attaches the identity. Failures short-circuit: the formatted error
// response is written here and no handler executes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		return c.Next()
	}
	path := c.Path()
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return c.Next()
		}
	}

	if m.routes.IsPublic(c.Method(), path) {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return m.formatter.Failure(c, util.NewUnauthorized("Authentication required. No token provided."))
	}

	identity, err := m.tokens.Verify(extractCredential(header))
	if err != nil {
		return m.formatter.Failure(c, err)
	}

	attachIdentity(c, identity)
	return c.Next()
}

// extractCredential pulls the token out of the Authorization header
// value. "Bearer <token>" yields the token; any other shape treats the
// whole value as the credential, kept for compatibility with clients
// that send the bare token.
func extractCredential(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}
