package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total     int64
		limit     int
		wantPages int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 5, 3},
		{100, 20, 5},
	}

	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.wantPages, p.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := testContext()
	Success(c, http.StatusCreated, "创建成功", gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "创建成功", resp.Message)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Error)
}

func TestBadRequestIncludesError(t *testing.T) {
	c, w := testContext()
	BadRequest(c, "数据验证失败", assert.AnError)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "数据验证失败", resp.Message)
	assert.NotEmpty(t, resp.Error)
}

func TestNotFoundEnvelope(t *testing.T) {
	c, w := testContext()
	NotFound(c, "博客不存在")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "博客不存在")
}

func TestInternalErrorHidesDetailInRelease(t *testing.T) {
	t.Setenv("GIN_MODE", "release")

	c, w := testContext()
	InternalError(c, "服务器内部错误", assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestInternalErrorShowsDetailInDev(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")

	c, w := testContext()
	InternalError(c, "服务器内部错误", assert.AnError)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}
