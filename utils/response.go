package utils

import (
	"os"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Message: message, Data: data})
}

func SuccessWithPagination(c *gin.Context, message string, data interface{}, pagination *Pagination) {
	c.JSON(200, Response{Success: true, Message: message, Data: data, Pagination: pagination})
}

func BadRequest(c *gin.Context, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(400, resp)
}

func NotFound(c *gin.Context, message string) {
	c.JSON(404, Response{Success: false, Message: message})
}

// InternalError hides the underlying error outside development.
func InternalError(c *gin.Context, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil && os.Getenv("GIN_MODE") != "release" {
		resp.Error = err.Error()
	}
	c.JSON(500, resp)
}
