package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/worksafe-api/internal/observability/metrics"
)

// Metrics records request count and latency labelled by the matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
