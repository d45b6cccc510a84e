package views

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/internal/dbtest"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

type fixture struct {
	e        *echo.Echo
	svc      *farm.Service
	sessions *cache.Sessions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sessions := cache.NewSessions(logger.Discard())
	svc := farm.New(dbtest.Open(t), logger.Discard(), &cache.Invalidator{Sessions: sessions, Log: logger.Discard()})
	e := echo.New()
	RegisterViewRoutes(e.Group("/api"), &api.Deps{Farm: svc, Sessions: sessions})
	return &fixture{e: e, svc: svc, sessions: sessions}
}

func (f *fixture) rows(t *testing.T, method, path, session string) ([]map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	var out []map[string]any
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s: %v", rec.Body, err)
		}
	}
	return out, rec
}

func (f *fixture) count(t *testing.T, itemID int) {
	t.Helper()
	_, err := f.svc.AddInventory(context.Background(), entity.Inventory{
		ItemID:        &itemID,
		NumberOfUnits: decimal.NewNullDecimal(decimal.NewFromInt(4)),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestView_ReadThroughAndInvalidation(t *testing.T) {
	f := newFixture(t)
	rows, _ := f.rows(t, http.MethodGet, "/api/views/inventory", "s1")
	if len(rows) != 0 {
		t.Fatalf("initial rows = %v", rows)
	}

	f.count(t, 1)
	rows, _ = f.rows(t, http.MethodGet, "/api/views/inventory", "s1")
	if len(rows) != 1 {
		t.Fatalf("rows after service write = %d, want 1", len(rows))
	}

	// A write that bypasses the service leaves the slot stale until refresh.
	if err := f.svc.DB().Create(&entity.Inventory{InventoryID: 50}).Error; err != nil {
		t.Fatal(err)
	}
	rows, _ = f.rows(t, http.MethodGet, "/api/views/inventory", "s1")
	if len(rows) != 1 {
		t.Errorf("cached rows = %d, want 1", len(rows))
	}
	rows, _ = f.rows(t, http.MethodPost, "/api/views/inventory/refresh", "s1")
	if len(rows) != 2 {
		t.Errorf("refreshed rows = %d, want 2", len(rows))
	}
}

func TestView_SessionsIsolated(t *testing.T) {
	f := newFixture(t)
	f.rows(t, http.MethodGet, "/api/views/labels", "a")
	if err := f.svc.DB().Create(&entity.Item{ItemID: 3, Item: "Basil"}).Error; err != nil {
		t.Fatal(err)
	}
	rowsA, _ := f.rows(t, http.MethodGet, "/api/views/labels", "a")
	rowsB, _ := f.rows(t, http.MethodGet, "/api/views/labels", "b")
	if len(rowsA) != 0 || len(rowsB) != 1 {
		t.Errorf("a = %d rows, b = %d rows; want 0 and 1", len(rowsA), len(rowsB))
	}
	if f.sessions.Len() != 2 {
		t.Errorf("sessions = %d, want 2", f.sessions.Len())
	}
}

func TestView_SessionHeaderAndUnknown(t *testing.T) {
	f := newFixture(t)
	_, rec := f.rows(t, http.MethodGet, "/api/views/orders-summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(SessionHeader) == "" {
		t.Error("new session id not returned")
	}
	if _, rec := f.rows(t, http.MethodGet, "/api/views/nope", "x"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown view = %d, want 404", rec.Code)
	}

	f.rows(t, http.MethodGet, "/api/views/orders", "x")
	req := httptest.NewRequest(http.MethodGet, "/api/views", nil)
	req.Header.Set(SessionHeader, "x")
	rec = httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	var body struct {
		Views  []string `json:"views"`
		Cached []string `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Views) != 5 || len(body.Cached) != 1 || body.Cached[0] != "orders" {
		t.Errorf("index = %+v", body)
	}
}
