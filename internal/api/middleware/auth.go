package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tastecraft/menu-studio/internal/api/metrics"
	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/token"
)

// Context keys set by the Auth middleware for downstream handlers.
const (
	CtxUserID       = "user_id"
	CtxTokenID      = "jti"
	CtxTokenExpires = "token_expires"
)

// Auth validates the bearer token through the token authority (signature,
// expiry, revocation — in that order) and injects the caller identity into
// the request context.
func Auth(authority *token.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("bad_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := authority.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenRevoked):
					metrics.AuthFailuresTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				case errors.Is(err, domain.ErrInvalidToken):
					metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				default:
					// Revocation store failure: fail closed without blaming the token.
					return err
				}
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxTokenID, claims.ID)
			c.Set(CtxTokenExpires, claims.ExpiresAt.Time)

			return next(c)
		}
	}
}
