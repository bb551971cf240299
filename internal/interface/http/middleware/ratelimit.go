package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// RateLimit 全局令牌桶限流，超出返回429
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			response.Error(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
