package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainSentinels(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrMissingCredentials, http.StatusBadRequest, "Username and password required"},
		{domain.ErrEmailRequired, http.StatusBadRequest, "Email is required"},
		{domain.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
		{domain.ErrPasswordsRequired, http.StatusBadRequest, "Current password and new password are required"},
		{domain.ErrPasswordConfirmation, http.StatusBadRequest, "Password confirmation is required"},
		{domain.ErrTitleRequired, http.StatusBadRequest, "Title is required"},
		{domain.ErrInvalidStatus, http.StatusBadRequest, "Invalid status"},
		{domain.ErrAlreadySubmitted, http.StatusBadRequest, "Menu already submitted"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrWrongCurrentPassword, http.StatusUnauthorized, "Current password is incorrect"},
		{domain.ErrWrongPassword, http.StatusUnauthorized, "Password is incorrect"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid or expired token"},
		{domain.ErrTokenRevoked, http.StatusUnauthorized, "token has been revoked"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrMenuNotFound, http.StatusNotFound, "Menu not found"},
		{domain.ErrUserExists, http.StatusConflict, "Username already exists"},
		{domain.ErrEmailInUse, http.StatusConflict, "Email already in use"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			code, msg := render(t, tt.err)
			if code != tt.code {
				t.Fatalf("code = %d, want %d", code, tt.code)
			}
			if msg != tt.message {
				t.Fatalf("message = %q, want %q", msg, tt.message)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedSentinel(t *testing.T) {
	code, msg := render(t, errors.Join(errors.New("context"), domain.ErrMenuNotFound))
	if code != http.StatusNotFound || msg != "Menu not found" {
		t.Fatalf("wrapped sentinel not resolved: %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_WeakPasswordReason(t *testing.T) {
	code, msg := render(t, &domain.WeakPasswordError{Reason: "Password must contain at least one digit"})
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	if msg != "Password must contain at least one digit" {
		t.Fatalf("reason not passed through: %q", msg)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if code != http.StatusUnauthorized || msg != "missing authorization header" {
		t.Fatalf("echo error not passed through: %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	code, msg := render(t, errors.New("mongo blew up"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

func TestHTTPErrorHandler_PersistenceError(t *testing.T) {
	code, msg := render(t, domain.ErrPersistence)
	if code != http.StatusInternalServerError || msg != "internal server error" {
		t.Fatalf("persistence failure not masked: %d %q", code, msg)
	}
}
