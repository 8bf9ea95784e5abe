package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bloghub/internal/auth"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request. Supplying
// parent_comment_id makes the comment a reply; the post is then inherited
// from the parent.
type CreateCommentRequest struct {
	Content         string  `json:"content" validate:"required,min=1,max=5000"`
	ParentCommentID *string `json:"parent_comment_id" validate:"omitempty,uuid"`
}

// UpdateCommentRequest represents a comment edit.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// CreateComment godoc
// @Summary Comment on a post, or reply to a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	postID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != nil {
		parsed, err := uuid.Parse(*req.ParentCommentID)
		if err != nil {
			return respondError(c, apperrors.ErrNotFound)
		}
		parentID = &parsed
	}

	comment, err := h.commentService.Create(c.Request().Context(), principal, postID, parentID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "comment created", comment)
}

// GetComment godoc
// @Summary Get a single comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comment, err := h.commentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "ok", comment)
}

// UpdateComment godoc
// @Summary Edit a comment (owner or admin)
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body UpdateCommentRequest true "New content"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	comment, err := h.commentService.Update(c.Request().Context(), principal, id, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "comment updated", comment)
}

// DeleteComment godoc
// @Summary Soft-delete a comment (owner or admin)
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.commentService.Delete(c.Request().Context(), principal, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "comment deleted", nil)
}

// ListComments godoc
// @Summary List a post's top-level comments, newest first
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page, limit := pageParams(c)

	comments, total, err := h.commentService.ListTopLevel(c.Request().Context(), postID, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, "ok", len(comments), total, page, limit, comments)
}

// ListReplies godoc
// @Summary List a comment's replies, oldest first
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Router /comments/{id}/replies [get]
func (h *CommentHandler) ListReplies(c echo.Context) error {
	parentID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page, limit := pageParams(c)

	replies, total, err := h.commentService.ListReplies(c.Request().Context(), parentID, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, "ok", len(replies), total, page, limit, replies)
}
