package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "bloghub/internal/errors"
)

// Response is the envelope carried by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// ListResponse is the envelope for paginated list endpoints.
type ListResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Count   int         `json:"count"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Pages   int64       `json:"pages"`
	Data    interface{} `json:"data"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondList(c echo.Context, message string, count int, total int64, page, limit int, data interface{}) error {
	pages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(http.StatusOK, ListResponse{
		Success: true,
		Message: message,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    data,
	})
}

func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	resp := Response{
		Success: false,
		Message: he.Message,
	}
	if len(he.Fields) > 0 {
		resp.Errors = he.Fields
	}
	return c.JSON(he.StatusCode, resp)
}

// pageParams reads the shared pagination query shape: page defaults to 1,
// limit defaults to 10 and is capped at 100.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// pathID parses a uuid path parameter; malformed ids read as absent resources.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return id, nil
}
