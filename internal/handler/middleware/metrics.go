package middleware

import (
	"strconv"
	"time"

	"roadready/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route template. Unmatched
// paths share one label so scanners cannot inflate cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
