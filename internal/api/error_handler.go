package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to its HTTP status codes and the
//     contract message strings.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The first violated password rule travels as-is.
	var weak *domain.WeakPasswordError
	if errors.As(err, &weak) {
		return http.StatusBadRequest, weak.Reason
	}

	switch {
	// Validation (400)
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, "Username and password required"
	case errors.Is(err, domain.ErrEmailRequired):
		return http.StatusBadRequest, "Email is required"
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email format"
	case errors.Is(err, domain.ErrPasswordsRequired):
		return http.StatusBadRequest, "Current password and new password are required"
	case errors.Is(err, domain.ErrPasswordConfirmation):
		return http.StatusBadRequest, "Password confirmation is required"
	case errors.Is(err, domain.ErrTitleRequired):
		return http.StatusBadRequest, "Title is required"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid status"
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return http.StatusBadRequest, "Menu already submitted"

	// Authentication (401)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrWrongCurrentPassword):
		return http.StatusUnauthorized, "Current password is incorrect"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusUnauthorized, "Password is incorrect"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "token has been revoked"

	// Authorization (403)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	// Not found (404)
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrMenuNotFound):
		return http.StatusNotFound, "Menu not found"

	// Conflict (409)
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict, "Email already in use"
	}

	// Unexpected error (ErrPersistence included): log the real cause, return
	// a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
