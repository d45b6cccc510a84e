package auth

import (
	"crypto/subtle"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/iasolb/EdgewaterInventoryManager/config"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

// Context keys set by the db mode.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Middleware returns the auth middleware for authType (AUTH_TYPE): "key",
// "db" or basic by default. svc is only used by the db mode.
func Middleware(authType string, svc *farm.Service) echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch strings.ToLower(authType) {
	case "key":
		return keyAuth(skipper)
	case "db":
		return dbAuth(svc, skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			user := os.Getenv("API_USER")
			return user != "" && equal(username, user) && equal(password, os.Getenv("API_PASS")), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return apiKey != "" && equal(key, apiKey), nil
		},
		Skipper: skipper,
	})
}

// dbAuth checks basic credentials against T_Users/T_Passwords and records the
// caller on the context.
func dbAuth(svc *farm.Service, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(email, password string, c echo.Context) (bool, error) {
			u, err := svc.Authenticate(c.Request().Context(), email, password)
			if err != nil {
				return false, nil
			}
			c.Set(ContextUserID, u.UserID)
			c.Set(ContextRole, u.Role)
			return true, nil
		},
		Skipper: skipper,
	})
}
