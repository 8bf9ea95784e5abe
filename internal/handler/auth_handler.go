package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bloghub/internal/auth"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// AuthResponse represents a successful login payload.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "user registered successfully", user)
}

// Login godoc
// @Summary Login and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "login successful", AuthResponse{
		Token: token,
		User:  user,
	})
}

// Me godoc
// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}
	return respond(c, http.StatusOK, "ok", principal)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	if err := h.authService.ChangePassword(c.Request().Context(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "password changed", nil)
}
