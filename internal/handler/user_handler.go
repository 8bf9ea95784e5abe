package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bloghub/internal/auth"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update; omitted fields are unchanged.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// GetUser godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "ok", user)
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), principal, service.UpdateProfileInput{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "profile updated", user)
}

// DeleteMe godoc
// @Summary Delete the current user's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	if err := h.userService.Delete(c.Request().Context(), principal.ID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "account deleted", nil)
}

// ListUsers godoc
// @Summary List users (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 403 {object} Response
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, limit := pageParams(c)

	users, total, err := h.userService.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, "ok", len(users), total, page, limit, users)
}
