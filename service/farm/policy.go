package farm

import (
	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/gateway"
)

// Policy is the editable column set of one entity and its value parsers.
type Policy struct {
	Allowed       []string
	Preprocessors map[string]gateway.Preprocessor
}

func (p Policy) options(mode gateway.FieldPolicy, log *logger.Logger) gateway.Options {
	return gateway.Options{Allowed: p.Allowed, Preprocessors: p.Preprocessors, Mode: mode, Log: log}
}

var quantityEvent = map[string]gateway.Preprocessor{
	"NumberOfUnits": gateway.ParseDecimal,
}

// EditPolicies restricts grid edits to columns owned by the edited table.
// Entities without an entry accept every mapped column.
var EditPolicies = map[string]Policy{
	entity.TagInventory: {
		Allowed: []string{"ItemID", "UnitID", "NumberOfUnits", "DateCounted", "InventoryComments"},
		Preprocessors: merge(quantityEvent, map[string]gateway.Preprocessor{
			"DateCounted": gateway.ParseTimestamp,
		}),
	},
	entity.TagPlanting: {
		Allowed: []string{"ItemID", "UnitID", "NumberOfUnits", "DatePlanted", "PlantingComments"},
		Preprocessors: merge(quantityEvent, map[string]gateway.Preprocessor{
			"DatePlanted": gateway.ParseTimestamp,
		}),
	},
	entity.TagPitch: {
		Allowed: []string{"ItemID", "UnitID", "NumberOfUnits", "DatePitched", "PitchComments", "PitchReason"},
		Preprocessors: merge(quantityEvent, map[string]gateway.Preprocessor{
			"DatePitched": gateway.ParseTimestamp,
		}),
	},
	entity.TagPrice: {
		Allowed: []string{"ItemID", "UnitID", "UnitPrice", "Year"},
	},
	entity.TagItem: {
		Allowed: []string{"Inactive", "Item", "Variety", "Color", "ShouldStock", "TypeID",
			"LabelDescription", "Definition", "PictureLayout", "PictureLink", "SunConditions"},
		Preprocessors: map[string]gateway.Preprocessor{
			"Inactive":    gateway.ParseBool,
			"ShouldStock": gateway.ParseBool,
			"Item":        gateway.TrimText,
		},
	},
	entity.TagOrder: {
		Allowed: []string{"GrowingSeasonID", "DatePlaced", "DateDue", "DateReceived", "SupplierID", "OrderNumber",
			"ShipperID", "TrackingNumber", "OrderComments", "TotalCost", "GrowingSeason", "BrokerID"},
		Preprocessors: map[string]gateway.Preprocessor{
			"DatePlaced":   gateway.ParseTimestamp,
			"DateDue":      gateway.ParseTimestamp,
			"DateReceived": gateway.ParseTimestamp,
		},
	},
	entity.TagOrderItem: {
		Allowed: []string{"OrderID", "ItemID", "ItemCode", "OrderItemTypeID", "Unit", "UnitPrice", "NumberOfUnits",
			"Received", "OrderNote", "OrderComments", "Leftover", "ToOrder"},
		Preprocessors: merge(quantityEvent, map[string]gateway.Preprocessor{
			"Received": gateway.ParseBool,
		}),
	},
	entity.TagOrderItemDestination: {
		Allowed: []string{"OrderItemID", "Count", "UnitID", "LocationID"},
	},
	entity.TagLocation:      {Allowed: []string{"Location"}, Preprocessors: map[string]gateway.Preprocessor{"Location": gateway.TrimText}},
	entity.TagBroker:        {Allowed: []string{"Broker", "BrokerComments"}},
	entity.TagOrderItemType: {Allowed: []string{"OrderItemType"}},
	entity.TagOrderNote:     {Allowed: []string{"OrderNote"}},
	entity.TagGrowingSeason: {
		Allowed: []string{"GrowingSeason", "StartDate", "EndDate"},
		Preprocessors: map[string]gateway.Preprocessor{
			"StartDate": gateway.ParseDate,
			"EndDate":   gateway.ParseDate,
		},
	},
	entity.TagUser: {
		Allowed: []string{"Role", "PermissionLevel", "Email", "Active"},
		Preprocessors: map[string]gateway.Preprocessor{
			"Active": gateway.ParseBool,
			"Email":  gateway.TrimText,
		},
	},
	entity.TagSeasonalNote: {
		Allowed: []string{"ItemID", "GrowingSeasonID", "Greenhouse", "Note", "LastUpdate"},
		Preprocessors: map[string]gateway.Preprocessor{
			"LastUpdate": gateway.ParseTimestamp,
		},
	},
	entity.TagPassword: {Allowed: []string{}},
}

func merge(maps ...map[string]gateway.Preprocessor) map[string]gateway.Preprocessor {
	out := make(map[string]gateway.Preprocessor)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
