package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryFull is one row of v_InventoryFull. Columns from joined tables are
// nil when the reference is missing.
type InventoryFull struct {
	InventoryID       int                 `gorm:"column:InventoryID;primaryKey" json:"InventoryID"`
	DateCounted       *time.Time          `gorm:"column:DateCounted" json:"DateCounted"`
	NumberOfUnits     decimal.NullDecimal `gorm:"column:NumberOfUnits" json:"NumberOfUnits"`
	InventoryComments *string             `gorm:"column:InventoryComments" json:"InventoryComments"`
	ItemID            *int                `gorm:"column:ItemID" json:"ItemID"`
	Item              *string             `gorm:"column:Item" json:"Item"`
	Variety           *string             `gorm:"column:Variety" json:"Variety"`
	Color             *string             `gorm:"column:Color" json:"Color"`
	Inactive          *bool               `gorm:"column:Inactive" json:"Inactive"`
	ShouldStock       *bool               `gorm:"column:ShouldStock" json:"ShouldStock"`
	LabelDescription  *string             `gorm:"column:LabelDescription" json:"LabelDescription"`
	SunConditions     *string             `gorm:"column:SunConditions" json:"SunConditions"`
	TypeID            *int                `gorm:"column:TypeID" json:"TypeID"`
	Type              *string             `gorm:"column:Type" json:"Type"`
	UnitID            *int                `gorm:"column:UnitID" json:"UnitID"`
	UnitType          *string             `gorm:"column:UnitType" json:"UnitType"`
	UnitSize          *string             `gorm:"column:UnitSize" json:"UnitSize"`
	UnitCategoryID    *int                `gorm:"column:UnitCategoryID" json:"UnitCategoryID"`
	UnitCategory      *string             `gorm:"column:UnitCategory" json:"UnitCategory"`
}

func (InventoryFull) TableName() string { return "v_InventoryFull" }

type PlantingsFull struct {
	PlantingID       int                 `gorm:"column:PlantingID;primaryKey" json:"PlantingID"`
	DatePlanted      *time.Time          `gorm:"column:DatePlanted" json:"DatePlanted"`
	NumberOfUnits    decimal.NullDecimal `gorm:"column:NumberOfUnits" json:"NumberOfUnits"`
	PlantingComments *string             `gorm:"column:PlantingComments" json:"PlantingComments"`
	ItemID           *int                `gorm:"column:ItemID" json:"ItemID"`
	Item             *string             `gorm:"column:Item" json:"Item"`
	Variety          *string             `gorm:"column:Variety" json:"Variety"`
	Color            *string             `gorm:"column:Color" json:"Color"`
	UnitID           *int                `gorm:"column:UnitID" json:"UnitID"`
	UnitType         *string             `gorm:"column:UnitType" json:"UnitType"`
	UnitSize         *string             `gorm:"column:UnitSize" json:"UnitSize"`
	UnitCategoryID   *int                `gorm:"column:UnitCategoryID" json:"UnitCategoryID"`
	UnitCategory     *string             `gorm:"column:UnitCategory" json:"UnitCategory"`
}

func (PlantingsFull) TableName() string { return "v_PlantingsFull" }

// LabelData is one printable label: an item joined with one of its prices.
// LabelKey is "<ItemID>:<PriceID>", with PriceID 0 for an unpriced item.
type LabelData struct {
	LabelKey         string   `gorm:"column:LabelKey;primaryKey" json:"LabelKey"`
	ItemID           int      `gorm:"column:ItemID" json:"ItemID"`
	Item             *string  `gorm:"column:Item" json:"Item"`
	Variety          *string  `gorm:"column:Variety" json:"Variety"`
	Color            *string  `gorm:"column:Color" json:"Color"`
	Inactive         *bool    `gorm:"column:Inactive" json:"Inactive"`
	LabelDescription *string  `gorm:"column:LabelDescription" json:"LabelDescription"`
	SunConditions    *string  `gorm:"column:SunConditions" json:"SunConditions"`
	PictureLink      *string  `gorm:"column:PictureLink" json:"PictureLink"`
	TypeID           *int     `gorm:"column:TypeID" json:"TypeID"`
	Type             *string  `gorm:"column:Type" json:"Type"`
	PriceID          *int     `gorm:"column:PriceID" json:"PriceID"`
	UnitID           *int     `gorm:"column:UnitID" json:"UnitID"`
	UnitPrice        *float64 `gorm:"column:UnitPrice" json:"UnitPrice"`
	Year             *string  `gorm:"column:Year" json:"Year"`
}

func (LabelData) TableName() string { return "v_LabelData" }

// OrdersFull is one order line with its header and lookups. OrderNoteCode is
// the line's note id, OrderNoteDecode its text.
type OrdersFull struct {
	OrderItemID       int                 `gorm:"column:OrderItemID;primaryKey" json:"OrderItemID"`
	OrderID           *int                `gorm:"column:OrderID" json:"OrderID"`
	ItemID            *int                `gorm:"column:ItemID" json:"ItemID"`
	ItemCode          *string             `gorm:"column:ItemCode" json:"ItemCode"`
	OrderItemTypeID   *int                `gorm:"column:OrderItemTypeID" json:"OrderItemTypeID"`
	OrderItemType     *string             `gorm:"column:OrderItemType" json:"OrderItemType"`
	Unit              *string             `gorm:"column:Unit" json:"Unit"`
	UnitPrice         *float64            `gorm:"column:UnitPrice" json:"UnitPrice"`
	NumberOfUnits     decimal.NullDecimal `gorm:"column:NumberOfUnits" json:"NumberOfUnits"`
	Received          *bool               `gorm:"column:Received" json:"Received"`
	OrderNoteCode     *int                `gorm:"column:OrderNoteCode" json:"OrderNoteCode"`
	OrderNoteDecode   *string             `gorm:"column:OrderNoteDecode" json:"OrderNoteDecode"`
	OrderItemComments *string             `gorm:"column:OrderItemComments" json:"OrderItemComments"`
	Leftover          *string             `gorm:"column:Leftover" json:"Leftover"`
	ToOrder           *string             `gorm:"column:ToOrder" json:"ToOrder"`
	GrowingSeasonID   *int                `gorm:"column:GrowingSeasonID" json:"GrowingSeasonID"`
	GrowingSeason     *string             `gorm:"column:GrowingSeason" json:"GrowingSeason"`
	DatePlaced        *time.Time          `gorm:"column:DatePlaced" json:"DatePlaced"`
	DateDue           *time.Time          `gorm:"column:DateDue" json:"DateDue"`
	DateReceived      *time.Time          `gorm:"column:DateReceived" json:"DateReceived"`
	OrderNumber       *string             `gorm:"column:OrderNumber" json:"OrderNumber"`
	TrackingNumber    *string             `gorm:"column:TrackingNumber" json:"TrackingNumber"`
	OrderComments     *string             `gorm:"column:OrderComments" json:"OrderComments"`
	TotalCost         *float64            `gorm:"column:TotalCost" json:"TotalCost"`
	SupplierID        *int                `gorm:"column:SupplierID" json:"SupplierID"`
	Supplier          *string             `gorm:"column:Supplier" json:"Supplier"`
	SupplierComments  *string             `gorm:"column:SupplierComments" json:"SupplierComments"`
	BrokerID          *int                `gorm:"column:BrokerID" json:"BrokerID"`
	Broker            *string             `gorm:"column:Broker" json:"Broker"`
	BrokerComments    *string             `gorm:"column:BrokerComments" json:"BrokerComments"`
	ShipperID         *int                `gorm:"column:ShipperID" json:"ShipperID"`
	Shipper           *string             `gorm:"column:Shipper" json:"Shipper"`
	ShipperComments   *string             `gorm:"column:ShipperComments" json:"ShipperComments"`
}

func (OrdersFull) TableName() string { return "v_OrdersFull" }
