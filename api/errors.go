package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/model/repository/gateway"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/store"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var coercion *store.CoercionError
	var disallowed *gateway.DisallowedFieldError
	var invalid *gateway.InvalidValueError
	switch {
	case errors.Is(err, store.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, store.ErrReadOnly):
		return http.StatusMethodNotAllowed
	case errors.Is(err, store.ErrUnknownColumn), errors.As(err, &coercion), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &disallowed):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Error writes err as {"error": ...} with the mapped status.
func Error(c echo.Context, err error) error {
	status := StatusFor(err)
	body := echo.Map{"error": err.Error()}
	var disallowed *gateway.DisallowedFieldError
	if errors.As(err, &disallowed) {
		body["fields"] = disallowed.Fields
	}
	return c.JSON(status, body)
}

// Duration sets the request duration header and returns the elapsed milliseconds.
func Duration(c echo.Context, start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(ms, 10))
	return ms
}
