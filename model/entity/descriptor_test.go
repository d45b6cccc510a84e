package entity

import (
	"testing"
)

func TestRegistry_ByTagAndFor(t *testing.T) {
	d, ok := ByTag(TagItem)
	if !ok {
		t.Fatal("item not registered")
	}
	if d.Table != "T_Items" || d.PrimaryKey != "ItemID" {
		t.Errorf("item descriptor = %s/%s", d.Table, d.PrimaryKey)
	}
	byType, ok := For[Item]()
	if !ok || byType != d {
		t.Error("For[Item] should return the same descriptor as ByTag")
	}
	if _, ok := For[struct{ X int }](); ok {
		t.Error("For on an unregistered type: want false")
	}
}

func TestDescriptor_ColumnTypes(t *testing.T) {
	tests := []struct {
		tag      string
		column   string
		want     ColumnType
		nullable bool
	}{
		{TagItem, "Item", Text, false},
		{TagItem, "TypeID", Integer, true},
		{TagItem, "Inactive", Boolean, false},
		{TagPrice, "UnitPrice", Float, false},
		{TagInventory, "DateCounted", Timestamp, true},
		{TagInventory, "NumberOfUnits", Decimal, true},
		{TagGrowingSeason, "StartDate", Date, true},
		{TagUser, "Active", Boolean, true},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"."+tt.column, func(t *testing.T) {
			d, _ := ByTag(tt.tag)
			c, ok := d.Column(tt.column)
			if !ok {
				t.Fatalf("column %s missing", tt.column)
			}
			if c.Type != tt.want {
				t.Errorf("type = %s, want %s", c.Type, tt.want)
			}
			if c.Nullable != tt.nullable {
				t.Errorf("nullable = %v, want %v", c.Nullable, tt.nullable)
			}
		})
	}
}

func TestDescriptor_Defaults(t *testing.T) {
	d, _ := ByTag(TagItem)
	c, _ := d.Column("ShouldStock")
	if !c.HasDefault || c.Default != "false" {
		t.Errorf("ShouldStock default = %q (has=%v)", c.Default, c.HasDefault)
	}
	u, _ := ByTag(TagUser)
	if c, _ := u.Column("Active"); c.Default != "true" {
		t.Errorf("Active default = %q, want true", c.Default)
	}
}

func TestViewsAreReadOnly(t *testing.T) {
	for _, tag := range []string{TagInventoryFull, TagPlantingsFull, TagLabelData, TagOrdersFull} {
		d, ok := ByTag(tag)
		if !ok {
			t.Fatalf("%s not registered", tag)
		}
		if !d.ReadOnly {
			t.Errorf("%s should be read-only", tag)
		}
		if d.PrimaryKey == "" {
			t.Errorf("%s has no key column", tag)
		}
	}
	if d, _ := ByTag(TagLabelData); d.PrimaryKey != "LabelKey" {
		t.Errorf("label key = %s", d.PrimaryKey)
	}
}

func TestTablesExcludeViews(t *testing.T) {
	tables := Tables()
	if len(tables) != 21 {
		t.Errorf("Tables = %d, want 21", len(tables))
	}
	for _, d := range tables {
		if d.ReadOnly {
			t.Errorf("%s is read-only", d.Tag)
		}
	}
	if len(Models()) != len(tables) {
		t.Error("Models and Tables disagree")
	}
}

func TestPrimaryKeyValue(t *testing.T) {
	d, _ := ByTag(TagItem)
	if got := d.PrimaryKeyValue(&Item{ItemID: 42}); got != 42 {
		t.Errorf("PrimaryKeyValue = %v, want 42", got)
	}
}
