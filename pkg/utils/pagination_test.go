package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paginationFor(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.PageSize)
	assert.Equal(t, 0, params.Offset)
}

func TestGetPaginationParamsOffset(t *testing.T) {
	params := paginationFor(t, "page=3&limit=10")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 10, params.PageSize)
	assert.Equal(t, 20, params.Offset)
}

func TestGetPaginationParamsClampsLimit(t *testing.T) {
	params := paginationFor(t, "limit=500")

	assert.Equal(t, MaxPageSize, params.PageSize)
}

func TestGetPaginationParamsIgnoresGarbage(t *testing.T) {
	params := paginationFor(t, "page=-2&limit=abc")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.PageSize)
}
