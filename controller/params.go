package controller

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const queryTimeout = 10 * time.Second

func queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}

// paginationParams reads page and limit from the query string. page floors at
// 1; limit falls back to the endpoint default.
func paginationParams(c *gin.Context, defaultLimit int) (page, limit, skip int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	skip = (page - 1) * limit
	return page, limit, skip
}

// parseBoolFlag maps the literal query strings "true"/"false" onto a
// three-state flag. Anything else, including absence, means "do not filter".
func parseBoolFlag(v string) *bool {
	switch v {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}
