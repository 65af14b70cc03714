package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) (page, size int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePaginationParams(c)
}

func TestParsePaginationParams(t *testing.T) {
	page, size := paramsForQuery(t, "page=2&limit=20")
	assert.Equal(t, 2, page)
	assert.Equal(t, 20, size)

	// size is an accepted alias for limit
	page, size = paramsForQuery(t, "page=3&size=30")
	assert.Equal(t, 3, page)
	assert.Equal(t, 30, size)
}

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, size := paramsForQuery(t, "")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestParsePaginationParamsInvalid(t *testing.T) {
	page, size := paramsForQuery(t, "page=abc&limit=-5")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = paramsForQuery(t, "page=0&limit=99999")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 15)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 15, limit)

	offset, limit = CalculateOffsetLimit(3, 15)
	assert.Equal(t, uint64(30), offset)
	assert.Equal(t, 15, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(31, 2, 15)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 15, info.PageSize)
	assert.Equal(t, int64(31), info.TotalItems)
}
