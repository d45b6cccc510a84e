package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a stockable product.
type Item struct {
	ItemID           int    `gorm:"column:ItemID;primaryKey;autoIncrement:false" json:"ItemID"`
	Inactive         bool   `gorm:"column:Inactive;not null;default:false" json:"Inactive"`
	Item             string `gorm:"column:Item;type:text" json:"Item"`
	Variety          string `gorm:"column:Variety;type:text" json:"Variety"`
	Color            string `gorm:"column:Color;type:text" json:"Color"`
	ShouldStock      bool   `gorm:"column:ShouldStock;not null;default:false" json:"ShouldStock"`
	TypeID           *int   `gorm:"column:TypeID;index" json:"TypeID"`
	LabelDescription string `gorm:"column:LabelDescription;type:text" json:"LabelDescription"`
	Definition       string `gorm:"column:Definition;type:text" json:"Definition"`
	PictureLayout    string `gorm:"column:PictureLayout;type:text" json:"PictureLayout"`
	PictureLink      string `gorm:"column:PictureLink;type:text" json:"PictureLink"`
	SunConditions    string `gorm:"column:SunConditions;type:text" json:"SunConditions"`
}

func (Item) TableName() string { return "T_Items" }

// Price is the unit price of an item for one season year.
type Price struct {
	PriceID   int     `gorm:"column:PriceID;primaryKey;autoIncrement:false" json:"PriceID"`
	ItemID    *int    `gorm:"column:ItemID;index" json:"ItemID"`
	UnitID    *int    `gorm:"column:UnitID;index" json:"UnitID"`
	UnitPrice float64 `gorm:"column:UnitPrice" json:"UnitPrice"`
	Year      string  `gorm:"column:Year;type:text" json:"Year"`
}

func (Price) TableName() string { return "T_Prices" }

// Planting records units of an item put in the ground.
type Planting struct {
	PlantingID       int                 `gorm:"column:PlantingID;primaryKey;autoIncrement:false" json:"PlantingID"`
	DatePlanted      *time.Time          `gorm:"column:DatePlanted" json:"DatePlanted"`
	ItemID           *int                `gorm:"column:ItemID;index" json:"ItemID"`
	UnitID           *int                `gorm:"column:UnitID;index" json:"UnitID"`
	NumberOfUnits    decimal.NullDecimal `gorm:"column:NumberOfUnits;type:decimal(12,3)" json:"NumberOfUnits"`
	PlantingComments string              `gorm:"column:PlantingComments;type:text" json:"PlantingComments"`
}

func (Planting) TableName() string { return "T_Plantings" }

// Inventory is one stock count.
type Inventory struct {
	InventoryID       int                 `gorm:"column:InventoryID;primaryKey;autoIncrement:false" json:"InventoryID"`
	DateCounted       *time.Time          `gorm:"column:DateCounted" json:"DateCounted"`
	ItemID            *int                `gorm:"column:ItemID;index" json:"ItemID"`
	UnitID            *int                `gorm:"column:UnitID;index" json:"UnitID"`
	NumberOfUnits     decimal.NullDecimal `gorm:"column:NumberOfUnits;type:decimal(12,3)" json:"NumberOfUnits"`
	InventoryComments string              `gorm:"column:InventoryComments;type:text" json:"InventoryComments"`
}

func (Inventory) TableName() string { return "T_Inventory" }

// Pitch records discarded units.
type Pitch struct {
	PitchID       int                 `gorm:"column:PitchID;primaryKey;autoIncrement:false" json:"PitchID"`
	DatePitched   *time.Time          `gorm:"column:DatePitched" json:"DatePitched"`
	ItemID        *int                `gorm:"column:ItemID;index" json:"ItemID"`
	UnitID        *int                `gorm:"column:UnitID;index" json:"UnitID"`
	NumberOfUnits decimal.NullDecimal `gorm:"column:NumberOfUnits;type:decimal(12,3)" json:"NumberOfUnits"`
	PitchComments string              `gorm:"column:PitchComments;type:text" json:"PitchComments"`
	PitchReason   string              `gorm:"column:PitchReason;type:text" json:"PitchReason"`
}

func (Pitch) TableName() string { return "T_Pitch" }

// SeasonalNote is a per-season grower note on an item.
type SeasonalNote struct {
	NoteID          int        `gorm:"column:NoteID;primaryKey;autoIncrement:false" json:"NoteID"`
	ItemID          *int       `gorm:"column:ItemID;index" json:"ItemID"`
	GrowingSeasonID *int       `gorm:"column:GrowingSeasonID;index" json:"GrowingSeasonID"`
	Greenhouse      int        `gorm:"column:Greenhouse;not null;default:0" json:"Greenhouse"`
	Note            string     `gorm:"column:Note;type:text" json:"Note"`
	LastUpdate      *time.Time `gorm:"column:LastUpdate" json:"LastUpdate"`
}

func (SeasonalNote) TableName() string { return "T_SeasonalNotes" }
