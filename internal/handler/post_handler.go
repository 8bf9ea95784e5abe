package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bloghub/internal/auth"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required,max=255"`
	Content string   `json:"content" validate:"required,min=10"`
	Excerpt string   `json:"excerpt" validate:"omitempty,max=512"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=64"`
	Status  string   `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdatePostRequest represents a post update; omitted fields are unchanged.
type UpdatePostRequest struct {
	Title   *string  `json:"title" validate:"omitempty,max=255"`
	Content *string  `json:"content" validate:"omitempty,min=10"`
	Excerpt *string  `json:"excerpt" validate:"omitempty,max=512"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=64"`
	Status  *string  `json:"status" validate:"omitempty,oneof=draft published"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	post, err := h.postService.Create(c.Request().Context(), principal, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Tags:    req.Tags,
		Status:  model.PostStatus(req.Status),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "post created", post)
}

// GetPost godoc
// @Summary Get a single post, incrementing its view counter
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "ok", post)
}

// UpdatePost godoc
// @Summary Update a post (owner or admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.NewValidationError("body", err.Error()))
	}

	input := service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Tags:    req.Tags,
	}
	if req.Status != nil {
		status := model.PostStatus(*req.Status)
		input.Status = &status
	}

	post, err := h.postService.Update(c.Request().Context(), principal, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "post updated", post)
}

// DeletePost godoc
// @Summary Delete a post (owner or admin)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	principal, ok := auth.Principal(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.postService.Delete(c.Request().Context(), principal, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "post deleted", nil)
}

// ListPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, limit := pageParams(c)

	posts, total, err := h.postService.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, "ok", len(posts), total, page, limit, posts)
}
