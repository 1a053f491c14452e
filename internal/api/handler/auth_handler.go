package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastecraft/menu-studio/internal/core/ports"
)

// AuthHandler exposes registration, login and the account self-service
// endpoints. All contract error messages are produced by the central error
// handler from the domain sentinels.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Credentials"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	tok, user, err := h.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{AccessToken: tok, UserID: user.ID})
}

// Logout revokes the presented token. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_, jti, expiresAt, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.users.Logout(c.Request().Context(), jti, expiresAt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

// GetSelf returns the authenticated user's identity.
//
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  selfResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) GetSelf(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetSelf(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, selfResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role()),
	})
}

// UpdateEmail changes the authenticated user's email address.
//
// @Summary      Update email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateEmailRequest  true  "New email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/me/email [patch]
func (h *AuthHandler) UpdateEmail(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.UpdateEmail(c.Request().Context(), userID, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email updated successfully"})
}

// UpdatePassword changes the authenticated user's password after verifying
// the current one.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/me/password [patch]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.UpdatePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// DeleteAccount removes the account and everything it owns. The token used
// to authenticate this call is revoked before the delete commits.
//
// @Summary      Delete account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteAccountRequest  true  "Password confirmation"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/me [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	userID, jti, expiresAt, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.DeleteAccount(c.Request().Context(), userID, req.Password, jti, expiresAt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Account deleted successfully"})
}
