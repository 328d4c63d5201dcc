package middleware

import (
	"strconv"
	"time"

	"busdekho/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight gauge. The route label
// is the matched pattern so path parameters do not explode cardinality.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reg == nil {
			c.Next()
			return
		}
		reg.HTTPRequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		reg.HTTPRequestsInFlight.Dec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		reg.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		reg.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
