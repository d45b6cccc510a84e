package entity

// Entity tags used by the HTTP and CLI layers.
const (
	TagItemType             = "item_type"
	TagUnitCategory         = "unit_category"
	TagUnit                 = "unit"
	TagBroker               = "broker"
	TagShipper              = "shipper"
	TagSupplier             = "supplier"
	TagGrowingSeason        = "growing_season"
	TagOrderItemType        = "order_item_type"
	TagOrderNote            = "order_note"
	TagLocation             = "location"
	TagItem                 = "item"
	TagPrice                = "price"
	TagPlanting             = "planting"
	TagInventory            = "inventory"
	TagPitch                = "pitch"
	TagSeasonalNote         = "seasonal_note"
	TagOrder                = "order"
	TagOrderItem            = "order_item"
	TagOrderItemDestination = "order_item_destination"
	TagUser                 = "user"
	TagPassword             = "password"

	TagInventoryFull = "inventory_full"
	TagPlantingsFull = "plantings_full"
	TagLabelData     = "label_data"
	TagOrdersFull    = "orders_full"
)

func init() {
	Register[ItemType](TagItemType, false)
	Register[UnitCategory](TagUnitCategory, false)
	Register[Unit](TagUnit, false)
	Register[Broker](TagBroker, false)
	Register[Shipper](TagShipper, false)
	Register[Supplier](TagSupplier, false)
	Register[GrowingSeason](TagGrowingSeason, false)
	Register[OrderItemType](TagOrderItemType, false)
	Register[OrderNote](TagOrderNote, false)
	Register[Location](TagLocation, false)
	Register[Item](TagItem, false)
	Register[Price](TagPrice, false)
	Register[Planting](TagPlanting, false)
	Register[Inventory](TagInventory, false)
	Register[Pitch](TagPitch, false)
	Register[SeasonalNote](TagSeasonalNote, false)
	Register[Order](TagOrder, false)
	Register[OrderItem](TagOrderItem, false)
	Register[OrderItemDestination](TagOrderItemDestination, false)
	Register[User](TagUser, false)
	Register[Password](TagPassword, false)

	Register[InventoryFull](TagInventoryFull, true)
	Register[PlantingsFull](TagPlantingsFull, true)
	Register[LabelData](TagLabelData, true)
	Register[OrdersFull](TagOrdersFull, true)
}
