package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	// Ping checks the store connection. Nil reports healthy.
	Ping   func(ctx context.Context) error
	Logger logrus.FieldLogger
}

func (h *HealthHandler) Banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "class manager api is running"})
}

func (h *HealthHandler) Health(c echo.Context) error {
	if h.Ping != nil {
		if err := h.Ping(c.Request().Context()); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("health check failed")
			}
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"message": "unhealthy",
				"store":   "unreachable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "ok", "store": "reachable"})
}
