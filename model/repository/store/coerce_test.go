package store

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

func col(t *testing.T, tag, name string) entity.Column {
	t.Helper()
	d, ok := entity.ByTag(tag)
	if !ok {
		t.Fatalf("tag %s not registered", tag)
	}
	c, ok := d.Column(name)
	if !ok {
		t.Fatalf("%s.%s missing", tag, name)
	}
	return c
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		tag    string
		column string
		in     any
		want   any
	}{
		{"int to text", entity.TagItem, "Item", 42, "42"},
		{"string to int", entity.TagItem, "TypeID", " 8 ", 8},
		{"whole float to int", entity.TagItem, "TypeID", 8.0, 8},
		{"json number to int", entity.TagItem, "TypeID", json.Number("13"), 13},
		{"string to float", entity.TagPrice, "UnitPrice", "3.75", 3.75},
		{"int to float", entity.TagPrice, "UnitPrice", 4, 4.0},
		{"yes to bool", entity.TagItem, "ShouldStock", "yes", true},
		{"false string to bool", entity.TagItem, "Inactive", "false", false},
		{"number to bool", entity.TagItem, "Inactive", 1, true},
		{"decimal string", entity.TagInventory, "NumberOfUnits", "2.25",
			decimal.NullDecimal{Decimal: decimal.RequireFromString("2.25"), Valid: true}},
		{"nil stays nil", entity.TagItem, "TypeID", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(col(t, tt.tag, tt.column), tt.in)
			if err != nil {
				t.Fatalf("Coerce: %v", err)
			}
			if d, ok := tt.want.(decimal.NullDecimal); ok {
				g, ok := got.(decimal.NullDecimal)
				if !ok || !g.Valid || !g.Decimal.Equal(d.Decimal) {
					t.Errorf("got %#v, want %v", got, d)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCoerce_Times(t *testing.T) {
	got, err := Coerce(col(t, entity.TagOrder, "DatePlaced"), "2024-02-03")
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	ts, ok := got.(time.Time)
	if !ok || ts.Year() != 2024 || ts.Month() != time.February || ts.Day() != 3 {
		t.Errorf("timestamp = %v", got)
	}

	got, err = Coerce(col(t, entity.TagGrowingSeason, "StartDate"), time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Coerce date: %v", err)
	}
	d, ok := got.(datatypes.Date)
	if !ok || time.Time(d).Hour() != 0 {
		t.Errorf("date = %v, want midnight", got)
	}
}

func TestCoerce_Errors(t *testing.T) {
	tests := []struct {
		tag, column string
		in          any
	}{
		{entity.TagItem, "TypeID", "eight"},
		{entity.TagItem, "TypeID", 8.5},
		{entity.TagPrice, "UnitPrice", "n/a"},
		{entity.TagItem, "Inactive", "maybe"},
		{entity.TagOrder, "DatePlaced", "next tuesday"},
		{entity.TagInventory, "NumberOfUnits", "a dozen"},
	}
	for _, tt := range tests {
		_, err := Coerce(col(t, tt.tag, tt.column), tt.in)
		ce, ok := err.(*CoercionError)
		if !ok {
			t.Errorf("%s.%s(%v): err = %v, want *CoercionError", tt.tag, tt.column, tt.in, err)
			continue
		}
		if ce.Field != tt.column {
			t.Errorf("Field = %s, want %s", ce.Field, tt.column)
		}
	}
}
