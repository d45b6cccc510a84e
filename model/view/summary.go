package view

import (
	"cmp"
	"slices"
	"time"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// OrderSummary is one order header with the number of its distinct lines.
type OrderSummary struct {
	OrderID          int        `json:"OrderID"`
	Supplier         *string    `json:"Supplier"`
	Broker           *string    `json:"Broker"`
	Shipper          *string    `json:"Shipper"`
	DatePlaced       *time.Time `json:"DatePlaced"`
	DateDue          *time.Time `json:"DateDue"`
	DateReceived     *time.Time `json:"DateReceived"`
	Received         *bool      `json:"Received"`
	OrderNumber      *string    `json:"OrderNumber"`
	TrackingNumber   *string    `json:"TrackingNumber"`
	TotalCost        *float64   `json:"TotalCost"`
	GrowingSeason    *string    `json:"GrowingSeason"`
	UniqueItems      int        `json:"UniqueItems"`
	OrderComments    *string    `json:"OrderComments"`
	BrokerComments   *string    `json:"BrokerComments"`
	ShipperComments  *string    `json:"ShipperComments"`
	SupplierComments *string    `json:"SupplierComments"`
}

// Summarize groups order lines by OrderID. Header fields come from the first
// line seen for each order. Lines without an OrderID are skipped. The result
// is ordered by DatePlaced desc, then OrderID desc.
func Summarize(rows []entity.OrdersFull) []OrderSummary {
	index := make(map[int]int)
	lines := make(map[int]map[int]struct{})
	out := []OrderSummary{}

	for _, r := range rows {
		if r.OrderID == nil {
			continue
		}
		id := *r.OrderID
		i, seen := index[id]
		if !seen {
			i = len(out)
			index[id] = i
			lines[id] = make(map[int]struct{})
			out = append(out, OrderSummary{
				OrderID:          id,
				Supplier:         r.Supplier,
				Broker:           r.Broker,
				Shipper:          r.Shipper,
				DatePlaced:       r.DatePlaced,
				DateDue:          r.DateDue,
				DateReceived:     r.DateReceived,
				Received:         r.Received,
				OrderNumber:      r.OrderNumber,
				TrackingNumber:   r.TrackingNumber,
				TotalCost:        r.TotalCost,
				GrowingSeason:    r.GrowingSeason,
				OrderComments:    r.OrderComments,
				BrokerComments:   r.BrokerComments,
				ShipperComments:  r.ShipperComments,
				SupplierComments: r.SupplierComments,
			})
		}
		lines[id][r.OrderItemID] = struct{}{}
		out[i].UniqueItems = len(lines[id])
	}

	slices.SortStableFunc(out, func(a, b OrderSummary) int {
		if c := descTime(a.DatePlaced, b.DatePlaced); c != 0 {
			return c
		}
		return cmp.Compare(b.OrderID, a.OrderID)
	})
	return out
}
