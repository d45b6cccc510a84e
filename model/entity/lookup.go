package entity

import "gorm.io/datatypes"

// ItemType is the T_ItemType lookup.
type ItemType struct {
	TypeID int    `gorm:"column:TypeID;primaryKey;autoIncrement:false" json:"TypeID"`
	Type   string `gorm:"column:Type;type:text" json:"Type"`
}

func (ItemType) TableName() string { return "T_ItemType" }

type UnitCategory struct {
	UnitCategoryID int    `gorm:"column:UnitCategoryID;primaryKey;autoIncrement:false" json:"UnitCategoryID"`
	UnitCategory   string `gorm:"column:UnitCategory;type:text" json:"UnitCategory"`
}

func (UnitCategory) TableName() string { return "T_UnitCategory" }

// Unit is a unit of measurement, e.g. a 4" pot or a 72-cell flat.
type Unit struct {
	UnitID         int    `gorm:"column:UnitID;primaryKey;autoIncrement:false" json:"UnitID"`
	UnitType       string `gorm:"column:UnitType;type:text" json:"UnitType"`
	UnitSize       string `gorm:"column:UnitSize;type:text" json:"UnitSize"`
	UnitCategoryID *int   `gorm:"column:UnitCategoryID;index" json:"UnitCategoryID"`
}

func (Unit) TableName() string { return "T_Units" }

type Broker struct {
	BrokerID       int    `gorm:"column:BrokerID;primaryKey;autoIncrement:false" json:"BrokerID"`
	Broker         string `gorm:"column:Broker;type:text" json:"Broker"`
	BrokerComments string `gorm:"column:BrokerComments;type:text" json:"BrokerComments"`
}

func (Broker) TableName() string { return "T_Brokers" }

type Shipper struct {
	ShipperID       int    `gorm:"column:ShipperID;primaryKey;autoIncrement:false" json:"ShipperID"`
	Shipper         string `gorm:"column:Shipper;type:text" json:"Shipper"`
	AccountNumber   string `gorm:"column:AccountNumber;type:text" json:"AccountNumber"`
	Phone           string `gorm:"column:Phone;type:text" json:"Phone"`
	ContactPerson   string `gorm:"column:ContactPerson;type:text" json:"ContactPerson"`
	Address1        string `gorm:"column:Address1;type:text" json:"Address1"`
	Address2        string `gorm:"column:Address2;type:text" json:"Address2"`
	City            string `gorm:"column:City;type:text" json:"City"`
	State           string `gorm:"column:State;type:text" json:"State"`
	Zip             string `gorm:"column:Zip;type:text" json:"Zip"`
	ShipperComments string `gorm:"column:ShipperComments;type:text" json:"ShipperComments"`
}

func (Shipper) TableName() string { return "T_Shippers" }

type Supplier struct {
	SupplierID       int    `gorm:"column:SupplierID;primaryKey;autoIncrement:false" json:"SupplierID"`
	Supplier         string `gorm:"column:Supplier;type:text" json:"Supplier"`
	AccountNumber    string `gorm:"column:AccountNumber;type:text" json:"AccountNumber"`
	Phone            string `gorm:"column:Phone;type:text" json:"Phone"`
	Fax              string `gorm:"column:Fax;type:text" json:"Fax"`
	WebSite          string `gorm:"column:WebSite;type:text" json:"WebSite"`
	Email            string `gorm:"column:Email;type:text" json:"Email"`
	ContactPerson    string `gorm:"column:ContactPerson;type:text" json:"ContactPerson"`
	Address1         string `gorm:"column:Address1;type:text" json:"Address1"`
	Address2         string `gorm:"column:Address2;type:text" json:"Address2"`
	City             string `gorm:"column:City;type:text" json:"City"`
	State            string `gorm:"column:State;type:text" json:"State"`
	Zip              string `gorm:"column:Zip;type:text" json:"Zip"`
	SupplierComments string `gorm:"column:SupplierComments;type:text" json:"SupplierComments"`
	SupplierType     string `gorm:"column:SupplierType;type:text" json:"SupplierType"`
}

func (Supplier) TableName() string { return "T_Suppliers" }

// GrowingSeason bounds are calendar dates without a time of day.
type GrowingSeason struct {
	GrowingSeasonID int             `gorm:"column:GrowingSeasonID;primaryKey;autoIncrement:false" json:"GrowingSeasonID"`
	GrowingSeason   string          `gorm:"column:GrowingSeason;type:text" json:"GrowingSeason"`
	StartDate       *datatypes.Date `gorm:"column:StartDate" json:"StartDate"`
	EndDate         *datatypes.Date `gorm:"column:EndDate" json:"EndDate"`
}

func (GrowingSeason) TableName() string { return "T_GrowingSeason" }

type OrderItemType struct {
	OrderItemTypeID int    `gorm:"column:OrderItemTypeID;primaryKey;autoIncrement:false" json:"OrderItemTypeID"`
	OrderItemType   string `gorm:"column:OrderItemType;type:text" json:"OrderItemType"`
}

func (OrderItemType) TableName() string { return "T_OrderItemTypes" }

// OrderNote is a reusable note template referenced by order lines.
type OrderNote struct {
	OrderNoteID int    `gorm:"column:OrderNoteID;primaryKey;autoIncrement:false" json:"OrderNoteID"`
	OrderNote   string `gorm:"column:OrderNote;type:text" json:"OrderNote"`
}

func (OrderNote) TableName() string { return "T_OrderNotes" }

// Location is a greenhouse, bench or field that receives order allocations.
type Location struct {
	LocationID int    `gorm:"column:LocationID;primaryKey;autoIncrement:false" json:"LocationID"`
	Location   string `gorm:"column:Location;type:text" json:"Location"`
}

func (Location) TableName() string { return "T_Locations" }
