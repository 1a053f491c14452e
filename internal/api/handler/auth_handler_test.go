package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastecraft/menu-studio/internal/api/middleware"
	"github.com/tastecraft/menu-studio/internal/core/domain"
)

type stubUserService struct {
	registerFn       func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn         func(ctx context.Context, jti string, expiresAt time.Time) error
	getSelfFn        func(ctx context.Context, userID int64) (*domain.User, error)
	updateEmailFn    func(ctx context.Context, userID int64, email string) error
	updatePasswordFn func(ctx context.Context, userID int64, currentPassword, newPassword string) error
	deleteAccountFn  func(ctx context.Context, userID int64, password, jti string, expiresAt time.Time) error
}

func (s *stubUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubUserService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.logoutFn(ctx, jti, expiresAt)
}

func (s *stubUserService) GetSelf(ctx context.Context, userID int64) (*domain.User, error) {
	return s.getSelfFn(ctx, userID)
}

func (s *stubUserService) UpdateEmail(ctx context.Context, userID int64, email string) error {
	return s.updateEmailFn(ctx, userID, email)
}

func (s *stubUserService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	return s.updatePasswordFn(ctx, userID, currentPassword, newPassword)
}

func (s *stubUserService) DeleteAccount(ctx context.Context, userID int64, password, jti string, expiresAt time.Time) error {
	return s.deleteAccountFn(ctx, userID, password, jti, expiresAt)
}

// authedContext builds a context as the Auth middleware would have left it.
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID int64) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxTokenID, "jti-1")
	c.Set(middleware.CtxTokenExpires, time.Now().Add(time.Hour))
	return c
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "password1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: 7, Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"password1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["user_id"] != float64(7) {
		t.Fatalf("unexpected user_id: %v", resp["user_id"])
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"bob","password":"password1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: 7, Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"password1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "signed-token" {
		t.Fatalf("unexpected token: %v", resp["access_token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	var revokedJTI string
	stub := &stubUserService{
		logoutFn: func(ctx context.Context, jti string, expiresAt time.Time) error {
			revokedJTI = jti
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revokedJTI != "jti-1" {
		t.Fatalf("jti not forwarded, got %q", revokedJTI)
	}
}

func TestAuthHandler_Logout_NoClaims(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 http error, got %v", err)
	}
}

func TestAuthHandler_GetSelf(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getSelfFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice", IsManager: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	if err := handler.GetSelf(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(7) || resp["username"] != "alice" || resp["role"] != "manager" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_UpdatePassword_ForwardsBothPasswords(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		updatePasswordFn: func(ctx context.Context, userID int64, currentPassword, newPassword string) error {
			if currentPassword != "old-pass1" || newPassword != "new-pass2" {
				t.Fatalf("unexpected args: %q %q", currentPassword, newPassword)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"current_password":"old-pass1","new_password":"new-pass2"}`)
	req := httptest.NewRequest(http.MethodPatch, "/auth/me/password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	if err := handler.UpdatePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteAccountFn: func(ctx context.Context, userID int64, password, jti string, expiresAt time.Time) error {
			if userID != 7 || password != "password1" || jti != "jti-1" {
				t.Fatalf("unexpected args: %d %q %q", userID, password, jti)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"password":"password1"}`)
	req := httptest.NewRequest(http.MethodDelete, "/auth/me", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	if err := handler.DeleteAccount(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Account deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}
