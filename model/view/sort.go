package view

import (
	"cmp"
	"slices"
	"time"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// descTime orders later times first with nulls last.
func descTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return b.Compare(*a)
}

func ascIntPtr(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

func sortInventory(rows []entity.InventoryFull) {
	slices.SortStableFunc(rows, func(a, b entity.InventoryFull) int {
		if c := descTime(a.DateCounted, b.DateCounted); c != 0 {
			return c
		}
		return cmp.Compare(b.InventoryID, a.InventoryID)
	})
}

func sortPlantings(rows []entity.PlantingsFull) {
	slices.SortStableFunc(rows, func(a, b entity.PlantingsFull) int {
		if c := descTime(a.DatePlanted, b.DatePlanted); c != 0 {
			return c
		}
		return cmp.Compare(b.PlantingID, a.PlantingID)
	})
}

func sortLabels(rows []entity.LabelData) {
	slices.SortStableFunc(rows, func(a, b entity.LabelData) int {
		if c := cmp.Compare(a.ItemID, b.ItemID); c != 0 {
			return c
		}
		return ascIntPtr(a.PriceID, b.PriceID)
	})
}

func sortOrders(rows []entity.OrdersFull) {
	slices.SortStableFunc(rows, func(a, b entity.OrdersFull) int {
		if c := descTime(a.DatePlaced, b.DatePlaced); c != 0 {
			return c
		}
		if c := descTime(a.DateDue, b.DateDue); c != 0 {
			return c
		}
		return cmp.Compare(a.OrderItemID, b.OrderItemID)
	})
}
