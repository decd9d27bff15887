package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// DefaultPageSize is used when the client sends no limit or a bad one.
	DefaultPageSize = 20
	// MaxPageSize caps the limit a client may request.
	MaxPageSize = 100
)

// PaginationParams carries the page/limit query parameters of a list request.
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams reads page and limit from the query string. Missing or
// malformed values fall back to defaults, oversized limits are clamped.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
