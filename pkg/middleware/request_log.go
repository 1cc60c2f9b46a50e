package middleware

import (
	"strconv"
	"time"

	"datecourse/pkg/logger"
	"datecourse/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestLogMiddleware logs one line per request and records the HTTP metrics.
// Errors attached with c.Error are included in the log line.
func RequestLogMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"trace_id", c.GetString("trace_id"),
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request handled", fields...)
		}
	}
}
