package utils

import (
	"errors"

	"streaming-backend/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// DetailResponse is the body of every error response.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// PagedResponse wraps a list payload with its pagination window.
type PagedResponse struct {
	Results interface{}    `json:"results"`
	Meta    PaginationMeta `json:"meta"`
}

// ErrorResponse sends a detail-keyed error body with the given status.
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(DetailResponse{Detail: message})
}

// HandleError maps a service error to its HTTP status. Untyped errors become
// an opaque 500 so store internals never reach the client.
func HandleError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Code, appErr.Message)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}

// CreatePaginationMeta creates pagination metadata
func CreatePaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}

	return PaginationMeta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
