package middleware

import (
	"strconv"
	"time"

	"property-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request count and latency per route. It must wrap
// logger.Middleware so the error handler has already written the status.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		// Process the request
		err := next(c)

		// Label by route template, not the raw URL
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}

		// Record metrics
		prometheus.RecordHTTPRequest(c.Request().Method, path, strconv.Itoa(c.Response().Status), time.Since(start))

		return err
	}
}
