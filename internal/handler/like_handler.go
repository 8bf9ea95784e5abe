package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bloghub/internal/auth"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/service"
)

// LikeHandler handles like-toggle endpoints.
type LikeHandler struct {
	likeService service.LikeService
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// TogglePostLike godoc
// @Summary Toggle the caller's like on a post
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id}/like [post]
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.likeService.TogglePostLike(c.Request().Context(), principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "like toggled", result)
}

// ToggleCommentLike godoc
// @Summary Toggle the caller's like on a comment
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /comments/{id}/like [post]
func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.likeService.ToggleCommentLike(c.Request().Context(), principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "like toggled", result)
}
