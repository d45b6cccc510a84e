package farm

import (
	"context"
	"time"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

func (s *Service) stamp(t *time.Time) *time.Time {
	if t != nil {
		return t
	}
	now := s.now()
	return &now
}

// AddInventory records a stock count. DateCounted defaults to now.
func (s *Service) AddInventory(ctx context.Context, rec entity.Inventory) (*entity.Inventory, error) {
	rec.DateCounted = s.stamp(rec.DateCounted)
	return create(ctx, s, s.Inventory, rec)
}

// AddPlanting records a planting. DatePlanted defaults to now.
func (s *Service) AddPlanting(ctx context.Context, rec entity.Planting) (*entity.Planting, error) {
	rec.DatePlanted = s.stamp(rec.DatePlanted)
	return create(ctx, s, s.Plantings, rec)
}

// AddPitch records discarded units. DatePitched defaults to now.
func (s *Service) AddPitch(ctx context.Context, rec entity.Pitch) (*entity.Pitch, error) {
	rec.DatePitched = s.stamp(rec.DatePitched)
	return create(ctx, s, s.Pitches, rec)
}

// AddOrder places an order. DatePlaced defaults to now.
func (s *Service) AddOrder(ctx context.Context, rec entity.Order) (*entity.Order, error) {
	rec.DatePlaced = s.stamp(rec.DatePlaced)
	return create(ctx, s, s.Orders, rec)
}

func (s *Service) AddOrderItem(ctx context.Context, rec entity.OrderItem) (*entity.OrderItem, error) {
	return create(ctx, s, s.OrderItems, rec)
}

func (s *Service) AddOrderItemDestination(ctx context.Context, rec entity.OrderItemDestination) (*entity.OrderItemDestination, error) {
	return create(ctx, s, s.OrderItemDestinations, rec)
}

func (s *Service) AddItem(ctx context.Context, rec entity.Item) (*entity.Item, error) {
	return create(ctx, s, s.Items, rec)
}

func (s *Service) AddPrice(ctx context.Context, rec entity.Price) (*entity.Price, error) {
	return create(ctx, s, s.Prices, rec)
}

// AddSeasonalNote stores a grower note. LastUpdate defaults to now.
func (s *Service) AddSeasonalNote(ctx context.Context, rec entity.SeasonalNote) (*entity.SeasonalNote, error) {
	rec.LastUpdate = s.stamp(rec.LastUpdate)
	return create(ctx, s, s.SeasonalNotes, rec)
}

func (s *Service) AddBroker(ctx context.Context, rec entity.Broker) (*entity.Broker, error) {
	return create(ctx, s, s.Brokers, rec)
}

func (s *Service) AddShipper(ctx context.Context, rec entity.Shipper) (*entity.Shipper, error) {
	return create(ctx, s, s.Shippers, rec)
}

func (s *Service) AddSupplier(ctx context.Context, rec entity.Supplier) (*entity.Supplier, error) {
	return create(ctx, s, s.Suppliers, rec)
}

func (s *Service) AddGrowingSeason(ctx context.Context, rec entity.GrowingSeason) (*entity.GrowingSeason, error) {
	return create(ctx, s, s.GrowingSeasons, rec)
}

func (s *Service) AddUnit(ctx context.Context, rec entity.Unit) (*entity.Unit, error) {
	return create(ctx, s, s.Units, rec)
}

func (s *Service) AddUnitCategory(ctx context.Context, name string) (*entity.UnitCategory, error) {
	return create(ctx, s, s.UnitCategories, entity.UnitCategory{UnitCategory: name})
}

func (s *Service) AddItemType(ctx context.Context, name string) (*entity.ItemType, error) {
	return create(ctx, s, s.ItemTypes, entity.ItemType{Type: name})
}

func (s *Service) AddOrderItemType(ctx context.Context, name string) (*entity.OrderItemType, error) {
	return create(ctx, s, s.OrderItemTypes, entity.OrderItemType{OrderItemType: name})
}

func (s *Service) AddOrderNote(ctx context.Context, note string) (*entity.OrderNote, error) {
	return create(ctx, s, s.OrderNotes, entity.OrderNote{OrderNote: note})
}

func (s *Service) AddLocation(ctx context.Context, name string) (*entity.Location, error) {
	return create(ctx, s, s.Locations, entity.Location{Location: name})
}
