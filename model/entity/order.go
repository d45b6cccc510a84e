package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase order header.
type Order struct {
	OrderID         int        `gorm:"column:OrderID;primaryKey;autoIncrement:false" json:"OrderID"`
	GrowingSeasonID *int       `gorm:"column:GrowingSeasonID;index" json:"GrowingSeasonID"`
	DatePlaced      *time.Time `gorm:"column:DatePlaced" json:"DatePlaced"`
	DateDue         *time.Time `gorm:"column:DateDue" json:"DateDue"`
	DateReceived    *time.Time `gorm:"column:DateReceived" json:"DateReceived"`
	SupplierID      *int       `gorm:"column:SupplierID;index" json:"SupplierID"`
	OrderNumber     string     `gorm:"column:OrderNumber;type:text" json:"OrderNumber"`
	ShipperID       *int       `gorm:"column:ShipperID;index" json:"ShipperID"`
	TrackingNumber  string     `gorm:"column:TrackingNumber;type:text" json:"TrackingNumber"`
	OrderComments   string     `gorm:"column:OrderComments;type:text" json:"OrderComments"`
	TotalCost       float64    `gorm:"column:TotalCost" json:"TotalCost"`
	GrowingSeason   string     `gorm:"column:GrowingSeason;type:text" json:"GrowingSeason"`
	BrokerID        *int       `gorm:"column:BrokerID;index" json:"BrokerID"`
}

func (Order) TableName() string { return "T_Orders" }

// OrderItem is one order line. OrderNote references T_OrderNotes.
type OrderItem struct {
	OrderItemID     int                 `gorm:"column:OrderItemID;primaryKey;autoIncrement:false" json:"OrderItemID"`
	OrderID         *int                `gorm:"column:OrderID;index" json:"OrderID"`
	ItemID          *int                `gorm:"column:ItemID;index" json:"ItemID"`
	ItemCode        string              `gorm:"column:ItemCode;type:text" json:"ItemCode"`
	OrderItemTypeID *int                `gorm:"column:OrderItemTypeID;index" json:"OrderItemTypeID"`
	Unit            string              `gorm:"column:Unit;type:text" json:"Unit"`
	UnitPrice       float64             `gorm:"column:UnitPrice" json:"UnitPrice"`
	NumberOfUnits   decimal.NullDecimal `gorm:"column:NumberOfUnits;type:decimal(12,3)" json:"NumberOfUnits"`
	Received        bool                `gorm:"column:Received;not null;default:false" json:"Received"`
	OrderNote       *int                `gorm:"column:OrderNote;index" json:"OrderNote"`
	OrderComments   string              `gorm:"column:OrderComments;type:text" json:"OrderComments"`
	Leftover        string              `gorm:"column:Leftover;type:text" json:"Leftover"`
	ToOrder         string              `gorm:"column:ToOrder;type:text" json:"ToOrder"`
}

func (OrderItem) TableName() string { return "T_OrderItems" }

// OrderItemDestination allocates part of a received line to a location.
type OrderItemDestination struct {
	OrderItemDestinationID int  `gorm:"column:OrderItemDestinationID;primaryKey;autoIncrement:false" json:"OrderItemDestinationID"`
	OrderItemID            *int `gorm:"column:OrderItemID;index" json:"OrderItemID"`
	Count                  int  `gorm:"column:Count;not null;default:0" json:"Count"`
	UnitID                 *int `gorm:"column:UnitID;index" json:"UnitID"`
	LocationID             *int `gorm:"column:LocationID;index" json:"LocationID"`
}

func (OrderItemDestination) TableName() string { return "T_OrderItemDestinations" }
