package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/view"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

type Label struct {
	LabelKey         string
	ItemID           int32
	Item             *string
	Variety          *string
	Color            *string
	LabelDescription *string
	SunConditions    *string
	PictureLink      *string
	Type             *string
	PriceID          *int32
	UnitPrice        *float64
	Year             *string
}

type OrderSummary struct {
	OrderID        int32
	Supplier       *string
	Broker         *string
	Shipper        *string
	DatePlaced     *string
	DateDue        *string
	DateReceived   *string
	Received       *bool
	OrderNumber    *string
	TrackingNumber *string
	TotalCost      *float64
	GrowingSeason  *string
	UniqueItems    int32
}

type InventoryRow struct {
	InventoryID   int32
	DateCounted   *string
	NumberOfUnits *string
	Item          *string
	Variety       *string
	Type          *string
	UnitType      *string
	UnitSize      *string
	Comments      *string
}

type ItemType struct {
	TypeID int32
	Type   string
}

type TableStat struct {
	Table string
	Rows  int32
	Error *string
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func decimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func NewLabel(r entity.LabelData) *Label {
	return &Label{
		LabelKey:         r.LabelKey,
		ItemID:           int32(r.ItemID),
		Item:             r.Item,
		Variety:          r.Variety,
		Color:            r.Color,
		LabelDescription: r.LabelDescription,
		SunConditions:    r.SunConditions,
		PictureLink:      r.PictureLink,
		Type:             r.Type,
		PriceID:          int32Ptr(r.PriceID),
		UnitPrice:        r.UnitPrice,
		Year:             r.Year,
	}
}

func NewOrderSummary(s view.OrderSummary) *OrderSummary {
	return &OrderSummary{
		OrderID:        int32(s.OrderID),
		Supplier:       s.Supplier,
		Broker:         s.Broker,
		Shipper:        s.Shipper,
		DatePlaced:     timeString(s.DatePlaced),
		DateDue:        timeString(s.DateDue),
		DateReceived:   timeString(s.DateReceived),
		Received:       s.Received,
		OrderNumber:    s.OrderNumber,
		TrackingNumber: s.TrackingNumber,
		TotalCost:      s.TotalCost,
		GrowingSeason:  s.GrowingSeason,
		UniqueItems:    int32(s.UniqueItems),
	}
}

func NewInventoryRow(r entity.InventoryFull) *InventoryRow {
	return &InventoryRow{
		InventoryID:   int32(r.InventoryID),
		DateCounted:   timeString(r.DateCounted),
		NumberOfUnits: decimalString(r.NumberOfUnits),
		Item:          r.Item,
		Variety:       r.Variety,
		Type:          r.Type,
		UnitType:      r.UnitType,
		UnitSize:      r.UnitSize,
		Comments:      r.InventoryComments,
	}
}

func NewItemType(t entity.ItemType) *ItemType {
	return &ItemType{TypeID: int32(t.TypeID), Type: t.Type}
}

func NewTableStat(s farm.TableStat) *TableStat {
	out := &TableStat{Table: s.Table, Rows: int32(s.Rows)}
	if s.Err != "" {
		e := s.Err
		out.Error = &e
	}
	return out
}
