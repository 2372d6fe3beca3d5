package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the request-scoped, verified representation of the calling
// user, reconstructed from a valid token. It lives only for the duration
// of the request.
type Identity struct {
	UserID string
	Email  string
	Role   domain.Role
}

// IdentityFromContext retrieves the identity attached by the middleware.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

func attachIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}
