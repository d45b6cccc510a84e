package farm

import (
	"context"

	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/view"
)

// Cache slot names.
const (
	SlotInventory     = "inventory"
	SlotPlantings     = "plantings"
	SlotLabels        = "labels"
	SlotOrders        = "orders"
	SlotOrdersSummary = "orders-summary"
)

// ViewSlots lists every slot served by the view endpoints.
var ViewSlots = []string{SlotInventory, SlotPlantings, SlotLabels, SlotOrders, SlotOrdersSummary}

func (s *Service) InventorySource() cache.Source[entity.InventoryFull] {
	return cache.Source[entity.InventoryFull]{Slot: SlotInventory, Tables: view.InventoryTables, Fetch: s.Views.Inventory}
}

func (s *Service) PlantingsSource() cache.Source[entity.PlantingsFull] {
	return cache.Source[entity.PlantingsFull]{Slot: SlotPlantings, Tables: view.PlantingsTables, Fetch: s.Views.Plantings}
}

func (s *Service) LabelsSource() cache.Source[entity.LabelData] {
	return cache.Source[entity.LabelData]{
		Slot:   SlotLabels,
		Tables: view.LabelTables,
		Fetch: func(ctx context.Context) ([]entity.LabelData, error) {
			return s.Views.Labels(ctx, nil)
		},
	}
}

func (s *Service) OrdersSource() cache.Source[entity.OrdersFull] {
	return cache.Source[entity.OrdersFull]{Slot: SlotOrders, Tables: view.OrdersTables, Fetch: s.Views.Orders}
}

func (s *Service) OrdersSummarySource() cache.Source[view.OrderSummary] {
	return cache.Source[view.OrderSummary]{Slot: SlotOrdersSummary, Tables: view.OrdersTables, Fetch: s.Views.OrdersSummary}
}

// LoadView reads slot through the session cache. refresh forces a reset.
// ok is false for an unknown slot.
func (s *Service) LoadView(ctx context.Context, slots *cache.Slots, slot string, refresh bool) (rows any, ok bool) {
	switch slot {
	case SlotInventory:
		return load(ctx, slots, s.InventorySource(), refresh), true
	case SlotPlantings:
		return load(ctx, slots, s.PlantingsSource(), refresh), true
	case SlotLabels:
		return load(ctx, slots, s.LabelsSource(), refresh), true
	case SlotOrders:
		return load(ctx, slots, s.OrdersSource(), refresh), true
	case SlotOrdersSummary:
		return load(ctx, slots, s.OrdersSummarySource(), refresh), true
	}
	return nil, false
}

func load[T any](ctx context.Context, slots *cache.Slots, src cache.Source[T], refresh bool) []T {
	if refresh {
		return cache.Reset(ctx, slots, src)
	}
	return cache.Load(ctx, slots, src)
}
