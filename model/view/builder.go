// Package view builds the denormalized read models. Every join is a LEFT JOIN
// so rows survive a missing lookup with null columns.
package view

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// Tables each view reads, used to tag cache slots.
var (
	InventoryTables = []string{"T_Inventory", "T_Items", "T_ItemType", "T_Units", "T_UnitCategory"}
	PlantingsTables = []string{"T_Plantings", "T_Items", "T_Units", "T_UnitCategory"}
	LabelTables     = []string{"T_Items", "T_Prices", "T_ItemType"}
	OrdersTables    = []string{"T_OrderItems", "T_Orders", "T_OrderItemTypes", "T_OrderNotes", "T_Brokers", "T_Shippers", "T_Suppliers"}
)

// Builder runs the view queries against one database.
type Builder struct {
	db *gorm.DB
}

func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

type sqlWriter struct {
	db *gorm.DB
	sb strings.Builder
}

func (w *sqlWriter) quote(name string) string {
	var sb strings.Builder
	w.db.Dialector.QuoteTo(&sb, name)
	return sb.String()
}

func (w *sqlWriter) col(alias, name string) string {
	return w.quote(alias) + "." + w.quote(name)
}

// selectCols writes "alias.col AS col" for each column, or "alias.col AS as"
// for "col=as" entries.
func (w *sqlWriter) selectCols(alias string, cols ...string) {
	for _, c := range cols {
		name, as, ok := strings.Cut(c, "=")
		if !ok {
			as = name
		}
		if w.sb.Len() > len("SELECT ") {
			w.sb.WriteString(", ")
		}
		w.sb.WriteString(w.col(alias, name))
		w.sb.WriteString(" AS ")
		w.sb.WriteString(w.quote(as))
	}
}

func (w *sqlWriter) from(table, alias string) {
	fmt.Fprintf(&w.sb, " FROM %s %s", w.quote(table), w.quote(alias))
}

func (w *sqlWriter) leftJoin(table, alias, leftAlias, leftCol, rightCol string) {
	fmt.Fprintf(&w.sb, " LEFT JOIN %s %s ON %s = %s",
		w.quote(table), w.quote(alias), w.col(alias, rightCol), w.col(leftAlias, leftCol))
}

func (b *Builder) writer() *sqlWriter {
	w := &sqlWriter{db: b.db}
	w.sb.WriteString("SELECT ")
	return w
}

// InventorySQL is the unordered inventory projection.
func (b *Builder) InventorySQL() string {
	w := b.writer()
	w.selectCols("inv", "InventoryID", "DateCounted", "NumberOfUnits", "InventoryComments", "ItemID", "UnitID")
	w.selectCols("i", "Item", "Variety", "Color", "Inactive", "ShouldStock", "LabelDescription", "SunConditions", "TypeID")
	w.selectCols("t", "Type")
	w.selectCols("u", "UnitType", "UnitSize", "UnitCategoryID")
	w.selectCols("uc", "UnitCategory")
	w.from("T_Inventory", "inv")
	w.leftJoin("T_Items", "i", "inv", "ItemID", "ItemID")
	w.leftJoin("T_ItemType", "t", "i", "TypeID", "TypeID")
	w.leftJoin("T_Units", "u", "inv", "UnitID", "UnitID")
	w.leftJoin("T_UnitCategory", "uc", "u", "UnitCategoryID", "UnitCategoryID")
	return w.sb.String()
}

func (b *Builder) PlantingsSQL() string {
	w := b.writer()
	w.selectCols("p", "PlantingID", "DatePlanted", "NumberOfUnits", "PlantingComments", "ItemID", "UnitID")
	w.selectCols("i", "Item", "Variety", "Color")
	w.selectCols("u", "UnitType", "UnitSize", "UnitCategoryID")
	w.selectCols("uc", "UnitCategory")
	w.from("T_Plantings", "p")
	w.leftJoin("T_Items", "i", "p", "ItemID", "ItemID")
	w.leftJoin("T_Units", "u", "p", "UnitID", "UnitID")
	w.leftJoin("T_UnitCategory", "uc", "u", "UnitCategoryID", "UnitCategoryID")
	return w.sb.String()
}

// LabelsSQL selects every item with each of its prices. LabelKey is derived
// after the scan; see LabelKeyExpr for the stored view.
func (b *Builder) LabelsSQL() string {
	w := b.writer()
	w.selectCols("i", "ItemID", "Item", "Variety", "Color", "Inactive", "LabelDescription", "SunConditions", "PictureLink", "TypeID")
	w.selectCols("t", "Type")
	w.selectCols("pr", "PriceID", "UnitID", "UnitPrice", "Year")
	w.from("T_Items", "i")
	w.leftJoin("T_Prices", "pr", "i", "ItemID", "ItemID")
	w.leftJoin("T_ItemType", "t", "i", "TypeID", "TypeID")
	return w.sb.String()
}

func (b *Builder) OrdersSQL() string {
	w := b.writer()
	w.selectCols("oi", "OrderItemID", "OrderID", "ItemID", "ItemCode", "OrderItemTypeID", "Unit", "UnitPrice",
		"NumberOfUnits", "Received", "OrderNote=OrderNoteCode", "OrderComments=OrderItemComments", "Leftover", "ToOrder")
	w.selectCols("oit", "OrderItemType")
	w.selectCols("n", "OrderNote=OrderNoteDecode")
	w.selectCols("o", "GrowingSeasonID", "GrowingSeason", "DatePlaced", "DateDue", "DateReceived", "OrderNumber",
		"TrackingNumber", "OrderComments", "TotalCost", "SupplierID", "BrokerID", "ShipperID")
	w.selectCols("s", "Supplier", "SupplierComments")
	w.selectCols("b", "Broker", "BrokerComments")
	w.selectCols("sh", "Shipper", "ShipperComments")
	w.from("T_OrderItems", "oi")
	w.leftJoin("T_Orders", "o", "oi", "OrderID", "OrderID")
	w.leftJoin("T_OrderItemTypes", "oit", "oi", "OrderItemTypeID", "OrderItemTypeID")
	w.leftJoin("T_OrderNotes", "n", "oi", "OrderNote", "OrderNoteID")
	w.leftJoin("T_Brokers", "b", "o", "BrokerID", "BrokerID")
	w.leftJoin("T_Shippers", "sh", "o", "ShipperID", "ShipperID")
	w.leftJoin("T_Suppliers", "s", "o", "SupplierID", "SupplierID")
	return w.sb.String()
}

// Inventory returns the inventory view, newest count first.
func (b *Builder) Inventory(ctx context.Context) ([]entity.InventoryFull, error) {
	rows := []entity.InventoryFull{}
	if err := b.db.WithContext(ctx).Raw(b.InventorySQL()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("inventory view: %w", err)
	}
	sortInventory(rows)
	return rows, nil
}

// Plantings returns the plantings view ordered by (DatePlanted, PlantingID) descending.
func (b *Builder) Plantings(ctx context.Context) ([]entity.PlantingsFull, error) {
	rows := []entity.PlantingsFull{}
	if err := b.db.WithContext(ctx).Raw(b.PlantingsSQL()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("plantings view: %w", err)
	}
	sortPlantings(rows)
	return rows, nil
}

// Labels returns label rows, optionally for one item, ordered by ItemID then PriceID.
func (b *Builder) Labels(ctx context.Context, itemID *int) ([]entity.LabelData, error) {
	q := b.LabelsSQL()
	var args []any
	if itemID != nil {
		w := &sqlWriter{db: b.db}
		q += " WHERE " + w.col("i", "ItemID") + " = ?"
		args = append(args, *itemID)
	}
	rows := []entity.LabelData{}
	if err := b.db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("label view: %w", err)
	}
	for i := range rows {
		rows[i].LabelKey = LabelKey(rows[i].ItemID, rows[i].PriceID)
	}
	sortLabels(rows)
	return rows, nil
}

// LabelKey renders the synthetic label key.
func LabelKey(itemID int, priceID *int) string {
	p := 0
	if priceID != nil {
		p = *priceID
	}
	return fmt.Sprintf("%d:%d", itemID, p)
}

// Orders returns order lines ordered by DatePlaced desc, DateDue desc, OrderItemID asc.
func (b *Builder) Orders(ctx context.Context) ([]entity.OrdersFull, error) {
	rows := []entity.OrdersFull{}
	if err := b.db.WithContext(ctx).Raw(b.OrdersSQL()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("orders view: %w", err)
	}
	sortOrders(rows)
	return rows, nil
}

// OrdersSummary groups the orders view into one row per order.
func (b *Builder) OrdersSummary(ctx context.Context) ([]OrderSummary, error) {
	rows, err := b.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}
