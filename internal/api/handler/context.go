package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastecraft/menu-studio/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing user id means
// the middleware never ran on this route, which is a wiring bug surfaced as
// 401 rather than a panic.
func ctxIdentity(c echo.Context) (userID int64, jti string, expiresAt time.Time, err error) {
	userID, ok := c.Get(middleware.CtxUserID).(int64)
	if !ok {
		return 0, "", time.Time{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	jti, _ = c.Get(middleware.CtxTokenID).(string)
	expiresAt, _ = c.Get(middleware.CtxTokenExpires).(time.Time)
	return userID, jti, expiresAt, nil
}
