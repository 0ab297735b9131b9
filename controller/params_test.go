package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryTestContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestPaginationParams(t *testing.T) {
	page, limit, skip := paginationParams(queryTestContext(""), 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, skip)

	page, limit, skip = paginationParams(queryTestContext("page=3&limit=20"), 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, skip)
}

func TestPaginationParamsFloors(t *testing.T) {
	page, limit, skip := paginationParams(queryTestContext("page=0&limit=-5"), 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, skip)

	page, _, _ = paginationParams(queryTestContext("page=abc"), 10)
	assert.Equal(t, 1, page)
}

func TestParseBoolFlag(t *testing.T) {
	b := parseBoolFlag("true")
	if assert.NotNil(t, b) {
		assert.True(t, *b)
	}

	b = parseBoolFlag("false")
	if assert.NotNil(t, b) {
		assert.False(t, *b)
	}

	assert.Nil(t, parseBoolFlag(""))
	assert.Nil(t, parseBoolFlag("1"))
	assert.Nil(t, parseBoolFlag("TRUE"))
}
