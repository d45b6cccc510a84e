// Package farm is the application facade over the record stores, the view
// builder and the cache invalidator.
package farm

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/gateway"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/store"
	"github.com/iasolb/EdgewaterInventoryManager/model/view"
)

// Invalidator drops cached views built from the given tables.
type Invalidator interface {
	Invalidate(ctx context.Context, tables ...string)
}

// Service holds one typed store per entity.
type Service struct {
	ItemTypes             *store.Store[entity.ItemType]
	UnitCategories        *store.Store[entity.UnitCategory]
	Units                 *store.Store[entity.Unit]
	Brokers               *store.Store[entity.Broker]
	Shippers              *store.Store[entity.Shipper]
	Suppliers             *store.Store[entity.Supplier]
	GrowingSeasons        *store.Store[entity.GrowingSeason]
	OrderItemTypes        *store.Store[entity.OrderItemType]
	OrderNotes            *store.Store[entity.OrderNote]
	Locations             *store.Store[entity.Location]
	Items                 *store.Store[entity.Item]
	Prices                *store.Store[entity.Price]
	Plantings             *store.Store[entity.Planting]
	Inventory             *store.Store[entity.Inventory]
	Pitches               *store.Store[entity.Pitch]
	SeasonalNotes         *store.Store[entity.SeasonalNote]
	Orders                *store.Store[entity.Order]
	OrderItems            *store.Store[entity.OrderItem]
	OrderItemDestinations *store.Store[entity.OrderItemDestination]
	Users                 *store.Store[entity.User]
	Passwords             *store.Store[entity.Password]
	InventoryView         *store.Store[entity.InventoryFull]
	PlantingsView         *store.Store[entity.PlantingsFull]
	LabelView             *store.Store[entity.LabelData]
	OrdersView            *store.Store[entity.OrdersFull]

	Views *view.Builder

	db        *gorm.DB
	log       *logger.Logger
	inv       Invalidator
	now       func() time.Time
	resources map[string]Resource
}

// New wires every store against db. inv may be nil.
func New(db *gorm.DB, log *logger.Logger, inv Invalidator) *Service {
	if log == nil {
		log = logger.Default()
	}
	s := &Service{
		Views: view.NewBuilder(db),
		db:    db,
		log:   log.WithComponent("farm"),
		inv:   inv,
		now:   time.Now,
	}
	s.resources = make(map[string]Resource)
	s.ItemTypes = register(s, store.MustNew[entity.ItemType](db, log))
	s.UnitCategories = register(s, store.MustNew[entity.UnitCategory](db, log))
	s.Units = register(s, store.MustNew[entity.Unit](db, log))
	s.Brokers = register(s, store.MustNew[entity.Broker](db, log))
	s.Shippers = register(s, store.MustNew[entity.Shipper](db, log))
	s.Suppliers = register(s, store.MustNew[entity.Supplier](db, log))
	s.GrowingSeasons = register(s, store.MustNew[entity.GrowingSeason](db, log))
	s.OrderItemTypes = register(s, store.MustNew[entity.OrderItemType](db, log))
	s.OrderNotes = register(s, store.MustNew[entity.OrderNote](db, log))
	s.Locations = register(s, store.MustNew[entity.Location](db, log))
	s.Items = register(s, store.MustNew[entity.Item](db, log))
	s.Prices = register(s, store.MustNew[entity.Price](db, log))
	s.Plantings = register(s, store.MustNew[entity.Planting](db, log))
	s.Inventory = register(s, store.MustNew[entity.Inventory](db, log))
	s.Pitches = register(s, store.MustNew[entity.Pitch](db, log))
	s.SeasonalNotes = register(s, store.MustNew[entity.SeasonalNote](db, log))
	s.Orders = register(s, store.MustNew[entity.Order](db, log))
	s.OrderItems = register(s, store.MustNew[entity.OrderItem](db, log))
	s.OrderItemDestinations = register(s, store.MustNew[entity.OrderItemDestination](db, log))
	s.Users = register(s, store.MustNew[entity.User](db, log))
	s.Passwords = register(s, store.MustNew[entity.Password](db, log))
	s.InventoryView = register(s, store.MustNew[entity.InventoryFull](db, log))
	s.PlantingsView = register(s, store.MustNew[entity.PlantingsFull](db, log))
	s.LabelView = register(s, store.MustNew[entity.LabelData](db, log))
	s.OrdersView = register(s, store.MustNew[entity.OrdersFull](db, log))
	return s
}

func register[T any](s *Service, st *store.Store[T]) *store.Store[T] {
	s.resources[st.Descriptor().Tag] = newResource(s, st)
	return st
}

// DB returns the underlying connection.
func (s *Service) DB() *gorm.DB { return s.db }

// Resource returns the adapter for an entity tag.
func (s *Service) Resource(tag string) (Resource, bool) {
	r, ok := s.resources[tag]
	return r, ok
}

// Resources returns every adapter sorted by tag.
func (s *Service) Resources() []Resource {
	out := make([]Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Descriptor().Tag < out[j].Descriptor().Tag })
	return out
}

func (s *Service) invalidate(ctx context.Context, tables ...string) {
	if s.inv != nil {
		s.inv.Invalidate(ctx, tables...)
	}
}

// Edit applies a guarded update to the record with primary key id.
func (s *Service) Edit(ctx context.Context, tag string, id any, updates map[string]any, mode gateway.FieldPolicy) (any, error) {
	r, ok := s.Resource(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotRegistered, tag)
	}
	return r.Edit(ctx, id, updates, mode)
}

// Remove deletes one record by primary key.
func (s *Service) Remove(ctx context.Context, tag string, id any) (bool, error) {
	r, ok := s.Resource(tag)
	if !ok {
		return false, fmt.Errorf("%w: %s", store.ErrNotRegistered, tag)
	}
	return r.Delete(ctx, id)
}

// RemoveMany deletes records by primary key and returns the ids that existed.
func (s *Service) RemoveMany(ctx context.Context, tag string, ids []any) ([]any, error) {
	r, ok := s.Resource(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotRegistered, tag)
	}
	return r.DeleteMany(ctx, ids)
}

// fieldsOf converts a record to create fields. Nil pointers and a zero primary
// key are left out so declared defaults and the sequence apply.
func fieldsOf(d *entity.Descriptor, rec any) map[string]any {
	v := reflect.Indirect(reflect.ValueOf(rec))
	out := make(map[string]any, len(d.Columns))
	for _, c := range d.Columns {
		f := v.FieldByName(c.Name)
		if !f.IsValid() {
			continue
		}
		if f.Kind() == reflect.Ptr && f.IsNil() {
			continue
		}
		if nd, ok := f.Interface().(decimal.NullDecimal); ok && !nd.Valid {
			continue
		}
		if c.Name == d.PrimaryKey && f.IsZero() {
			continue
		}
		out[c.Name] = f.Interface()
	}
	return out
}

func create[T any](ctx context.Context, s *Service, st *store.Store[T], rec T) (*T, error) {
	out, err := st.Create(ctx, fieldsOf(st.Descriptor(), &rec))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, st.Descriptor().Table)
	return out, nil
}
