// Package system serves the unauthenticated health and metrics routes.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	"github.com/iasolb/EdgewaterInventoryManager/core/metrics"
)

func init() {
	api.RegisterRoute(RegisterSystemRoutes)
}

func RegisterSystemRoutes(e *echo.Echo, d *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "down", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "sessions": d.Sessions.Len()})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
