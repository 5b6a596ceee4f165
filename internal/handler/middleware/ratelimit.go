package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"roadready/internal/infra/cache"
	"roadready/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles mutating requests per principal, falling back to the
// client IP for anonymous callers. A nil bucket disables it.
type RateLimiter struct {
	bucket *cache.TokenBucket
}

func NewRateLimiter(bucket *cache.TokenBucket) *RateLimiter {
	return &RateLimiter{bucket: bucket}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || r.bucket == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if p, ok := GetPrincipal(c); ok {
			key = "user:" + p.UserID.String()
		}

		decision, err := r.bucket.Allow(c.Request.Context(), key)
		if err != nil {
			// fail open
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		if !decision.Allowed {
			metrics.RateLimited.Inc()
			c.Header("Retry-After", strconv.FormatInt(int64(decision.RetryAfter.Seconds())+1, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "Too many requests"},
			})
			return
		}
		c.Next()
	}
}
