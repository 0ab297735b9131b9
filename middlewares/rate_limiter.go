package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]int
	limit    int
	window   time.Duration
}

// NewRateLimiter caps requests per client IP to limit per window.
func NewRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]int),
		limit:    limit,
		window:   window,
	}
	go rl.reset()
	return rl
}

func (rl *rateLimiter) reset() {
	for {
		time.Sleep(rl.window)
		rl.mu.Lock()
		rl.visitors = make(map[string]int)
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.mu.Lock()
		rl.visitors[c.ClientIP()]++
		over := rl.visitors[c.ClientIP()] > rl.limit
		rl.mu.Unlock()

		if over {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}
