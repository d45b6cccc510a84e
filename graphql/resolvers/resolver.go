package resolvers

import (
	"context"
	"encoding/json"

	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/graphql"
	"github.com/iasolb/EdgewaterInventoryManager/graphql/models"
	gqlregistry "github.com/iasolb/EdgewaterInventoryManager/graphql/registry"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/view"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

// QueryResolver is the single resolver for all Query fields. View fields read
// through the caller's cache session when one is present.
type QueryResolver struct {
	svc      *farm.Service
	sessions *cache.Sessions
}

func NewQueryResolver(svc *farm.Service, sessions *cache.Sessions) *QueryResolver {
	return &QueryResolver{svc: svc, sessions: sessions}
}

func (r *QueryResolver) slots(ctx context.Context) *cache.Slots {
	id := graphql.SessionFromContext(ctx)
	if id == "" || r.sessions == nil {
		return nil
	}
	return r.sessions.Get(id)
}

func loadView[T any](ctx context.Context, slots *cache.Slots, src cache.Source[T]) ([]T, error) {
	if slots == nil {
		return src.Fetch(ctx)
	}
	return cache.Load(ctx, slots, src), nil
}

func (r *QueryResolver) Labels(ctx context.Context, args struct{ ItemID *int32 }) ([]*models.Label, error) {
	var rows []entity.LabelData
	var err error
	if args.ItemID != nil {
		id := int(*args.ItemID)
		rows, err = r.svc.Views.Labels(ctx, &id)
	} else {
		rows, err = loadView(ctx, r.slots(ctx), r.svc.LabelsSource())
	}
	if err != nil {
		return nil, err
	}
	out := make([]*models.Label, len(rows))
	for i, row := range rows {
		out[i] = models.NewLabel(row)
	}
	return out, nil
}

func (r *QueryResolver) OrdersSummary(ctx context.Context) ([]*models.OrderSummary, error) {
	rows, err := loadView(ctx, r.slots(ctx), r.svc.OrdersSummarySource())
	if err != nil {
		return nil, err
	}
	out := make([]*models.OrderSummary, len(rows))
	for i, row := range rows {
		out[i] = models.NewOrderSummary(row)
	}
	return out, nil
}

func (r *QueryResolver) Inventory(ctx context.Context, args struct{ Q *string }) ([]*models.InventoryRow, error) {
	rows, err := loadView(ctx, r.slots(ctx), r.svc.InventorySource())
	if err != nil {
		return nil, err
	}
	if args.Q != nil {
		rows = view.Search(rows, *args.Q, func(row entity.InventoryFull) []*string {
			return []*string{row.Item, row.Variety, row.Color, row.Type, row.InventoryComments}
		})
	}
	out := make([]*models.InventoryRow, len(rows))
	for i, row := range rows {
		out[i] = models.NewInventoryRow(row)
	}
	return out, nil
}

func (r *QueryResolver) ItemTypes(ctx context.Context) ([]*models.ItemType, error) {
	types, err := r.svc.ListItemTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.ItemType, len(types))
	for i, t := range types {
		out[i] = models.NewItemType(t)
	}
	return out, nil
}

func (r *QueryResolver) SunConditions(ctx context.Context) ([]string, error) {
	return r.svc.SunConditions(ctx)
}

func (r *QueryResolver) TableStats(ctx context.Context) ([]*models.TableStat, error) {
	stats := r.svc.Stats(ctx)
	out := make([]*models.TableStat, len(stats))
	for i, s := range stats {
		out[i] = models.NewTableStat(s)
	}
	return out, nil
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args struct {
	Name string
	Args *string
}) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
