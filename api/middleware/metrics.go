package middleware

import (
	"strconv"
	"time"

	"classmanager/internal/metrics"

	"github.com/labstack/echo/v4"
)

// RequestMetrics records count and latency per matched route.
func RequestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.RequestCompleted(route, c.Request().Method, strconv.Itoa(c.Response().Status), time.Since(start))
			return nil
		}
	}
}
