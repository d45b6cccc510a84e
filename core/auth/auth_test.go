package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/internal/dbtest"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

func newEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/health", ok)
	e.GET("/api/records", func(c echo.Context) error {
		if id, found := c.Get(ContextUserID).(int); found {
			return c.JSON(http.StatusOK, map[string]int{"user": id})
		}
		return ok(c)
	})
	return e
}

func status(e *echo.Echo, path string, prepare func(*http.Request)) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestBasicAuth(t *testing.T) {
	t.Setenv("API_USER", "grower")
	t.Setenv("API_PASS", "secret")
	e := newEcho(Middleware("basic", nil))

	if got := status(e, "/api/records", nil); got != http.StatusUnauthorized {
		t.Errorf("no credentials = %d, want 401", got)
	}
	if got := status(e, "/api/records", func(r *http.Request) { r.SetBasicAuth("grower", "secret") }); got != http.StatusOK {
		t.Errorf("valid credentials = %d, want 200", got)
	}
	if got := status(e, "/api/records", func(r *http.Request) { r.SetBasicAuth("grower", "nope") }); got != http.StatusUnauthorized {
		t.Errorf("bad password = %d, want 401", got)
	}
	if got := status(e, "/health", nil); got != http.StatusOK {
		t.Errorf("skipped path = %d, want 200", got)
	}
}

func TestBasicAuth_UnsetUserRejectsEmptyCredentials(t *testing.T) {
	t.Setenv("API_USER", "")
	t.Setenv("API_PASS", "")
	e := newEcho(Middleware("", nil))
	if got := status(e, "/api/records", func(r *http.Request) { r.SetBasicAuth("", "") }); got != http.StatusUnauthorized {
		t.Errorf("empty credentials = %d, want 401", got)
	}
}

func TestKeyAuth(t *testing.T) {
	t.Setenv("API_KEY", "k-123")
	e := newEcho(Middleware("key", nil))
	if got := status(e, "/api/records", func(r *http.Request) { r.Header.Set("Authorization", "Bearer k-123") }); got != http.StatusOK {
		t.Errorf("valid key = %d, want 200", got)
	}
	if got := status(e, "/api/records", func(r *http.Request) { r.Header.Set("Authorization", "Bearer other") }); got != http.StatusUnauthorized {
		t.Errorf("bad key = %d, want 401", got)
	}
}

func TestDBAuth(t *testing.T) {
	svc := farm.New(dbtest.Open(t), logger.Discard(), nil)
	ctx := context.Background()
	u, err := svc.AddUser(ctx, entity.User{Email: "ana@edgewater.farm", Role: "admin"}, "tomato")
	if err != nil {
		t.Fatal(err)
	}
	e := newEcho(Middleware("db", svc))

	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	req.SetBasicAuth("ana@edgewater.farm", "tomato")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"user":1}`+"\n" {
		t.Errorf("valid login = %d %q", rec.Code, rec.Body)
	}

	if got := status(e, "/api/records", func(r *http.Request) { r.SetBasicAuth("ana@edgewater.farm", "potato") }); got != http.StatusUnauthorized {
		t.Errorf("bad password = %d, want 401", got)
	}
	if _, err := svc.SetUsersActive(ctx, []int{u.UserID}, false); err != nil {
		t.Fatal(err)
	}
	if got := status(e, "/api/records", func(r *http.Request) { r.SetBasicAuth("ana@edgewater.farm", "tomato") }); got != http.StatusUnauthorized {
		t.Errorf("inactive user = %d, want 401", got)
	}
}
