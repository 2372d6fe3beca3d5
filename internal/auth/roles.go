package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/domain"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// RequireRoles wraps a handler with a required-role check. It reads the
// identity attached by the auth middleware and never verifies tokens
// itself. Failures propagate as errors to the top-level formatter.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || identity.Role == "" {
			return util.NewForbidden("User role not found.")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			names := strings.Join(domain.RoleNames(allowed), ", ")
			return util.NewForbidden("Access denied. Required roles: " + names)
		}
		return c.Next()
	}
}
