package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	gqlregistry "github.com/iasolb/EdgewaterInventoryManager/graphql/registry"
	"github.com/iasolb/EdgewaterInventoryManager/internal/dbtest"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

func TestGraphQL_Query(t *testing.T) {
	gqlregistry.Register("echoName", func(_ context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"name": args["name"]}, nil
	})
	defer gqlregistry.Unregister("echoName")

	ctx := context.Background()
	sessions := cache.NewSessions(logger.Discard())
	svc := farm.New(dbtest.Open(t), logger.Discard(), &cache.Invalidator{Sessions: sessions})
	if _, err := svc.SeedItemTypes(ctx); err != nil {
		t.Fatal(err)
	}
	herb := farm.DecodeType("Herb")
	if _, err := svc.AddItem(ctx, entity.Item{Item: "Basil", Variety: "Genovese", TypeID: &herb, SunConditions: "Full Sun"}); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	RegisterGraphQLRoutes(e, &api.Deps{Farm: svc, Sessions: sessions})

	query := `{
		labels(itemId: 1) { labelKey item type }
		inventory(q: "basil") { inventoryId }
		itemTypes { typeId type }
		sunConditions
		_extension(name: "echoName", args: "{\"name\":\"Herb\"}")
	}`
	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Session-ID", "gql")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data struct {
			Labels []struct {
				LabelKey string
				Item     *string
				Type     *string
			}
			Inventory     []struct{ InventoryID int }
			ItemTypes     []struct{ TypeID int }
			SunConditions []string
			Extension     *string `json:"_extension"`
		}
		Errors []struct{ Message string }
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("errors = %+v", resp.Errors)
	}
	d := resp.Data
	if len(d.Labels) != 1 || d.Labels[0].LabelKey != "1:0" || *d.Labels[0].Type != "Herb" {
		t.Errorf("labels = %+v", d.Labels)
	}
	if len(d.Inventory) != 0 {
		t.Errorf("inventory = %+v", d.Inventory)
	}
	// Unassigned (0) is not seeded.
	if len(d.ItemTypes) != len(farm.TypeCodes)-1 {
		t.Errorf("itemTypes = %d, want %d", len(d.ItemTypes), len(farm.TypeCodes)-1)
	}
	if len(d.SunConditions) != 1 || d.SunConditions[0] != "Full Sun" {
		t.Errorf("sunConditions = %v", d.SunConditions)
	}
	if d.Extension == nil || *d.Extension != `{"name":"Herb"}` {
		t.Errorf("_extension = %v", d.Extension)
	}
	if _, ok := cache.Peek[entity.InventoryFull](sessions.Get("gql"), farm.SlotInventory); !ok {
		t.Error("inventory slot not cached for the session")
	}
}
