// Package views serves the denormalized views from the caller's session cache.
package views

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

// SessionHeader carries the cache session id. A request without one gets a
// fresh id echoed back in the same header.
const SessionHeader = "X-Session-ID"

const sessionKey = "cache_session"

func init() {
	api.RegisterModule(RegisterViewRoutes)
}

func RegisterViewRoutes(apiGroup *echo.Group, d *api.Deps) {
	g := apiGroup.Group("/views", SessionMiddleware(d.Sessions))
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"views":  farm.ViewSlots,
			"cached": slots(c).Names(),
		})
	})
	g.GET("/:name", func(c echo.Context) error {
		return serve(c, d.Farm, false)
	})
	g.POST("/:name/refresh", func(c echo.Context) error {
		return serve(c, d.Farm, true)
	})
}

// SessionMiddleware attaches the caller's slots to the context.
func SessionMiddleware(sessions *cache.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(SessionHeader)
			if id == "" {
				id = sessions.NewID()
			}
			c.Response().Header().Set(SessionHeader, id)
			c.Set(sessionKey, sessions.Get(id))
			return next(c)
		}
	}
}

func slots(c echo.Context) *cache.Slots {
	return c.Get(sessionKey).(*cache.Slots)
}

func serve(c echo.Context, svc *farm.Service, refresh bool) error {
	start := time.Now()
	rows, ok := svc.LoadView(c.Request().Context(), slots(c), c.Param("name"), refresh)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown view " + c.Param("name")})
	}
	api.Duration(c, start)
	return c.JSON(http.StatusOK, rows)
}
