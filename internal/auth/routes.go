package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/domain"
)

// RouteSpec declares a route's method, path pattern, visibility and
// required roles at registration time. Visibility is intrinsic to the
// route; it is never inferred from the request.
type RouteSpec struct {
	Method  string
	Path    string
	Public  bool
	Roles   []domain.Role
	Handler fiber.Handler
}

// RouteTable is the static route-visibility table consulted by the auth
// middleware. Built once at startup, read-only afterwards.
type RouteTable struct {
	specs []RouteSpec
}

// NewRouteTable builds the table from declared routes.
func NewRouteTable(specs []RouteSpec) *RouteTable {
	return &RouteTable{specs: specs}
}

// Specs returns the declared routes for registration.
func (t *RouteTable) Specs() []RouteSpec {
	return t.specs
}

// Match resolves the concrete route for a method and request path.
// Path parameters (":name" segments) match exactly one segment.
func (t *RouteTable) Match(method, path string) (*RouteSpec, bool) {
	for i := range t.specs {
		spec := &t.specs[i]
		if !strings.EqualFold(spec.Method, method) {
			continue
		}
		if matchPattern(spec.Path, path) {
			return spec, true
		}
	}
	return nil, false
}

// IsPublic reports whether the resolved route is declared public.
// Unresolved paths are not public: classification fails closed and the
// request proceeds to authentication.
func (t *RouteTable) IsPublic(method, path string) bool {
	spec, ok := t.Match(method, path)
	return ok && spec.Public
}

func matchPattern(pattern, path string) bool {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patternSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
