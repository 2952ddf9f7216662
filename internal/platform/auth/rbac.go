package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns middleware that rejects requests lacking any of the
// given roles. The "admin" role always passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required || has == "admin" {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// RequireSuperuser guards the operations only an administrator may perform:
// sequence moves across branches and day lock toggles.
func RequireSuperuser() echo.MiddlewareFunc {
	return RequireRole("admin")
}

// IsSuperuser reports whether the context carries the admin role.
func IsSuperuser(ctx context.Context) bool {
	for _, r := range RolesFromContext(ctx) {
		if r == "admin" {
			return true
		}
	}
	return false
}
