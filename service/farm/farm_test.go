package farm

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/internal/dbtest"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/gateway"
)

type recorder struct{ tables []string }

func (r *recorder) Invalidate(_ context.Context, tables ...string) {
	r.tables = append(r.tables, tables...)
}

func newService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(dbtest.Open(t), logger.Discard(), rec)
	return s, rec
}

func ptr[T any](v T) *T { return &v }

func TestResources_CoverEveryEntity(t *testing.T) {
	s, _ := newService(t)
	if got, want := len(s.Resources()), len(entity.All()); got != want {
		t.Errorf("Resources = %d, want %d", got, want)
	}
	if _, ok := s.Resource(entity.TagLabelData); !ok {
		t.Error("label_data resource missing")
	}
	if _, ok := s.Resource("nope"); ok {
		t.Error("unknown tag should not resolve")
	}
}

func TestAddInventory_DefaultsDateAndInvalidates(t *testing.T) {
	s, rec := newService(t)
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	inv, err := s.AddInventory(context.Background(), entity.Inventory{
		ItemID:        ptr(1),
		UnitID:        ptr(2),
		NumberOfUnits: decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
	})
	if err != nil {
		t.Fatalf("AddInventory: %v", err)
	}
	if inv.InventoryID != 1 {
		t.Errorf("InventoryID = %d, want 1", inv.InventoryID)
	}
	if inv.DateCounted == nil || !inv.DateCounted.Equal(now) {
		t.Errorf("DateCounted = %v, want %v", inv.DateCounted, now)
	}
	if !inv.NumberOfUnits.Valid || !inv.NumberOfUnits.Decimal.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("NumberOfUnits = %v", inv.NumberOfUnits)
	}
	if !reflect.DeepEqual(rec.tables, []string{"T_Inventory"}) {
		t.Errorf("invalidated = %v", rec.tables)
	}
}

func TestAddPlanting_KeepsSuppliedDate(t *testing.T) {
	s, _ := newService(t)
	planted := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	p, err := s.AddPlanting(context.Background(), entity.Planting{ItemID: ptr(3), DatePlanted: &planted})
	if err != nil {
		t.Fatalf("AddPlanting: %v", err)
	}
	if !p.DatePlanted.Equal(planted) {
		t.Errorf("DatePlanted = %v, want %v", p.DatePlanted, planted)
	}
	if p.NumberOfUnits.Valid {
		t.Error("NumberOfUnits should stay null")
	}
}

func TestEdit_AppliesPolicy(t *testing.T) {
	s, rec := newService(t)
	ctx := context.Background()
	s.now = func() time.Time { return time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC) }
	inv, err := s.AddInventory(ctx, entity.Inventory{ItemID: ptr(1)})
	if err != nil {
		t.Fatal(err)
	}
	rec.tables = nil

	got, err := s.Edit(ctx, entity.TagInventory, inv.InventoryID, map[string]any{
		"NumberOfUnits": "4.25",
		"Item":          "Tomato",
		"DateCounted":   "2024-05-03",
	}, gateway.DropDisallowed)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	updated := got.(*entity.Inventory)
	if !updated.NumberOfUnits.Decimal.Equal(decimal.RequireFromString("4.25")) {
		t.Errorf("NumberOfUnits = %v", updated.NumberOfUnits)
	}
	if updated.DateCounted.Day() != 3 {
		t.Errorf("DateCounted = %v", updated.DateCounted)
	}
	if !reflect.DeepEqual(rec.tables, []string{"T_Inventory"}) {
		t.Errorf("invalidated = %v", rec.tables)
	}

	_, err = s.Edit(ctx, entity.TagInventory, inv.InventoryID, map[string]any{"Item": "Tomato"}, gateway.RejectDisallowed)
	var dis *gateway.DisallowedFieldError
	if !errors.As(err, &dis) {
		t.Errorf("strict edit err = %v, want DisallowedFieldError", err)
	}
}

func TestEdit_MissingRecord(t *testing.T) {
	s, rec := newService(t)
	got, err := s.Edit(context.Background(), entity.TagBroker, 99, map[string]any{"Broker": "x"}, gateway.DropDisallowed)
	if err != nil || got != nil {
		t.Errorf("Edit missing = %v, %v; want nil, nil", got, err)
	}
	if len(rec.tables) != 0 {
		t.Errorf("invalidated on miss: %v", rec.tables)
	}
}

func TestEdit_PasswordsAreNotEditable(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	u, err := s.AddUser(ctx, entity.User{Email: "grower@example.com"}, "secret")
	if err != nil {
		t.Fatal(err)
	}
	p, _ := s.Passwords.GetByID(ctx, "UserID", u.UserID)
	before := p.PasswordHash
	if _, err := s.Edit(ctx, entity.TagPassword, p.PasswordID, map[string]any{"PasswordHash": "x"}, gateway.DropDisallowed); err != nil {
		t.Fatal(err)
	}
	p, _ = s.Passwords.GetByID(ctx, "UserID", u.UserID)
	if p.PasswordHash != before {
		t.Error("password hash changed through Edit")
	}
}

func TestCreate_PasswordsGoThroughSetPassword(t *testing.T) {
	s, rec := newService(t)
	ctx := context.Background()
	r, ok := s.Resource(entity.TagPassword)
	if !ok {
		t.Fatal("password resource missing")
	}
	if _, err := r.Create(ctx, map[string]any{"PasswordHash": "plain"}); !errors.Is(err, ErrPasswordWrite) {
		t.Fatalf("create err = %v, want ErrPasswordWrite", err)
	}
	if n, _ := s.Passwords.Count(ctx); n != 0 {
		t.Errorf("password rows = %d, want 0", n)
	}
	if len(rec.tables) != 0 {
		t.Errorf("invalidated on rejected create: %v", rec.tables)
	}

	u, err := s.AddUser(ctx, entity.User{Email: "grower@example.com"}, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Authenticate(ctx, "grower@example.com", "secret"); err != nil {
		t.Errorf("Authenticate after SetPassword: %v", err)
	}
	if err := s.SetPassword(ctx, u.UserID, "changed"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Authenticate(ctx, "grower@example.com", "changed"); err != nil {
		t.Errorf("Authenticate after change: %v", err)
	}
}

func TestRemoveAndRemoveMany(t *testing.T) {
	s, rec := newService(t)
	ctx := context.Background()
	for _, name := range []string{"North", "South", "Bench 3"} {
		if _, err := s.AddLocation(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	rec.tables = nil
	ok, err := s.Remove(ctx, entity.TagLocation, 1)
	if err != nil || !ok {
		t.Fatalf("Remove = %v, %v", ok, err)
	}
	removed, err := s.RemoveMany(ctx, entity.TagLocation, []any{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(removed, []any{2, 3}) {
		t.Errorf("RemoveMany = %v, want [2 3]", removed)
	}
	if len(rec.tables) != 2 {
		t.Errorf("invalidations = %v", rec.tables)
	}
	if _, err := s.Remove(ctx, "nope", 1); err == nil {
		t.Error("Remove on unknown tag: want error")
	}
}

func TestDecodeType(t *testing.T) {
	tests := map[string]int{"Annual": 6, "Hard Good": 11, "Herb": 13, "Unassigned": 0, "Cactus": 0}
	for name, want := range tests {
		if got := DecodeType(name); got != want {
			t.Errorf("DecodeType(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestSeedItemTypesAndLookup(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	n, err := s.SeedItemTypes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(TypeCodes)-1 {
		t.Errorf("seeded %d, want %d", n, len(TypeCodes)-1)
	}
	if n, _ := s.SeedItemTypes(ctx); n != 0 {
		t.Errorf("second seed added %d", n)
	}
	id, err := s.TypeIDByName(ctx, "perennial")
	if err != nil || id != 7 {
		t.Errorf("TypeIDByName = %d, %v; want 7", id, err)
	}
	types, _ := s.ListItemTypes(ctx)
	if len(types) != n || types[0].TypeID != 3 {
		t.Errorf("ListItemTypes = %+v", types)
	}

	item, err := s.AddItem(ctx, entity.Item{Item: "Basil", TypeID: ptr(100)})
	if err != nil {
		t.Fatal(err)
	}
	if item.ItemID != 1 {
		t.Errorf("ItemID = %d", item.ItemID)
	}
	created, err := s.AddItemType(ctx, "Shrub")
	if err != nil {
		t.Fatal(err)
	}
	if created.TypeID != 14 {
		t.Errorf("next TypeID = %d, want 14", created.TypeID)
	}
}

func TestSunConditions(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	for _, sun := range []string{"Full Sun", "Shade", "", "Full Sun", " Part Shade "} {
		if _, err := s.AddItem(ctx, entity.Item{Item: "x", SunConditions: sun}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.SunConditions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Full Sun", "Part Shade", "Shade"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SunConditions = %v, want %v", got, want)
	}
}

func TestUsers_PasswordsAndActivation(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	u, err := s.AddUser(ctx, entity.User{Email: " grower@example.com ", Role: "staff"}, "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if !u.IsActive() {
		t.Error("new user should default to active")
	}
	if _, err := s.Authenticate(ctx, "grower@example.com", "hunter2"); err != nil {
		t.Errorf("Authenticate: %v", err)
	}
	if _, err := s.Authenticate(ctx, "grower@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := s.Authenticate(ctx, "nobody@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}

	if err := s.SetPassword(ctx, u.UserID, "changed"); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Passwords.Count(ctx); n != 1 {
		t.Errorf("password rows = %d, want 1", n)
	}
	if _, err := s.Authenticate(ctx, "grower@example.com", "changed"); err != nil {
		t.Errorf("Authenticate after change: %v", err)
	}

	updated, err := s.SetUsersActive(ctx, []int{u.UserID, 404}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(updated, []int{u.UserID}) {
		t.Errorf("SetUsersActive = %v", updated)
	}
	if _, err := s.Authenticate(ctx, "grower@example.com", "changed"); !errors.Is(err, ErrUserInactive) {
		t.Errorf("inactive user err = %v", err)
	}
}

func TestStats(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	if _, err := s.AddBroker(ctx, entity.Broker{Broker: "Ball"}); err != nil {
		t.Fatal(err)
	}
	stats := s.Stats(ctx)
	if len(stats) != len(entity.Tables()) {
		t.Fatalf("Stats = %d entries", len(stats))
	}
	for _, st := range stats {
		want := int64(0)
		if st.Tag == entity.TagBroker {
			want = 1
		}
		if st.Rows != want || st.Err != "" {
			t.Errorf("%s = %d (%s), want %d", st.Table, st.Rows, st.Err, want)
		}
	}
}

func TestList_Search(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	for _, name := range []string{"Cherry Tomato", "Basil", "Tomatillo"} {
		if _, err := s.AddItem(ctx, entity.Item{Item: name}); err != nil {
			t.Fatal(err)
		}
	}
	r, _ := s.Resource(entity.TagItem)
	got, err := r.List(ctx, nil, "TOMA")
	if err != nil {
		t.Fatal(err)
	}
	if items := got.([]entity.Item); len(items) != 2 {
		t.Errorf("search matched %d items, want 2", len(items))
	}
}
