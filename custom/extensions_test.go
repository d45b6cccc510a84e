package custom

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	_ "github.com/iasolb/EdgewaterInventoryManager/api/graphql"
	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/internal/dbtest"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	sessions := cache.NewSessions(logger.Discard())
	svc := farm.New(dbtest.Open(t), logger.Discard(), &cache.Invalidator{Sessions: sessions})
	e := echo.New()
	api.ApplyRoutes(e, &api.Deps{Farm: svc, Sessions: sessions, Log: logger.Discard()})
	return e
}

func TestDecodeTypeExtension_OverGraphQL(t *testing.T) {
	e := newServer(t)
	query := `{
		herb: _extension(name: "decodeType", args: "{\"name\":\"Herb\"}")
		other: _extension(name: "decodeType", args: "{\"name\":\"Cactus\"}")
	}`
	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data struct {
			Herb  string
			Other string
		}
		Errors []struct{ Message string }
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("errors = %+v", resp.Errors)
	}
	if resp.Data.Herb != `{"typeId":13}` {
		t.Errorf("herb = %s", resp.Data.Herb)
	}
	if resp.Data.Other != `{"typeId":0}` {
		t.Errorf("unknown type = %s", resp.Data.Other)
	}
}

func TestVersionRoute(t *testing.T) {
	e := newServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["app"]; !ok {
		t.Errorf("body = %v, want app key", got)
	}
}
