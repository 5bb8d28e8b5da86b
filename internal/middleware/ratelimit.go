package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// GenerateRateLimiter throttles plan generation per client IP. Generation
// drives a paid completion call, so the limit is deliberately low: a burst of
// 2, refilling one run every 30 seconds. Idle limiters expire after an hour.
func GenerateRateLimiter() gin.HandlerFunc {
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(30*time.Second), 2), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many generation requests, slow down"})
	})
}
