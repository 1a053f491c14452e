package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

// RBAC enforces role-based access control on the administrative surface.
// The role is derived from the caller's stored permission flags at request
// time, never from token contents, so a demoted user loses access as soon as
// the flags change.
func RBAC(users ports.UserRepository, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserID).(int64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			caller, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if _, ok := allowed[caller.Role()]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
