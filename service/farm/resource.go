package farm

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/gateway"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/store"
)

// Resource is the untyped face of one entity used by the HTTP and CLI layers.
// Single-record methods return a nil interface when the record is absent.
type Resource interface {
	Descriptor() *entity.Descriptor
	List(ctx context.Context, filters store.Filters, q string) (any, error)
	Get(ctx context.Context, id any) (any, error)
	Create(ctx context.Context, fields map[string]any) (any, error)
	Edit(ctx context.Context, id any, updates map[string]any, mode gateway.FieldPolicy) (any, error)
	Delete(ctx context.Context, id any) (bool, error)
	DeleteMany(ctx context.Context, ids []any) ([]any, error)
	Count(ctx context.Context) (int64, error)
}

// ErrPasswordWrite rejects generic creates on T_Passwords; hashes only come from SetPassword.
var ErrPasswordWrite = fmt.Errorf("passwords are set per user: %w", store.ErrReadOnly)

type resource[T any] struct {
	store  *store.Store[T]
	policy Policy
	svc    *Service
}

func newResource[T any](svc *Service, s *store.Store[T]) *resource[T] {
	return &resource[T]{store: s, policy: EditPolicies[s.Descriptor().Tag], svc: svc}
}

func (r *resource[T]) Descriptor() *entity.Descriptor { return r.store.Descriptor() }

func (r *resource[T]) List(ctx context.Context, filters store.Filters, q string) (any, error) {
	rows, err := r.store.GetAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	return searchRecords(r.store.Descriptor(), rows, q), nil
}

func (r *resource[T]) Get(ctx context.Context, id any) (any, error) {
	return orNil(r.store.GetByID(ctx, "", id))
}

func (r *resource[T]) Create(ctx context.Context, fields map[string]any) (any, error) {
	if r.store.Descriptor().Tag == entity.TagPassword {
		return nil, ErrPasswordWrite
	}
	rec, err := r.store.Create(ctx, fields)
	if err == nil {
		r.svc.invalidate(ctx, r.store.Descriptor().Table)
	}
	return orNil(rec, err)
}

func (r *resource[T]) Edit(ctx context.Context, id any, updates map[string]any, mode gateway.FieldPolicy) (any, error) {
	rec, err := gateway.Update[T](ctx, r.store, r.store.Descriptor().PrimaryKey, id, updates, r.policy.options(mode, r.svc.log))
	if err == nil && rec != nil {
		r.svc.invalidate(ctx, r.store.Descriptor().Table)
	}
	return orNil(rec, err)
}

func (r *resource[T]) Delete(ctx context.Context, id any) (bool, error) {
	ok, err := r.store.Delete(ctx, "", id)
	if ok {
		r.svc.invalidate(ctx, r.store.Descriptor().Table)
	}
	return ok, err
}

func (r *resource[T]) DeleteMany(ctx context.Context, ids []any) ([]any, error) {
	removed, err := r.store.DeleteMany(ctx, ids)
	if len(removed) > 0 {
		r.svc.invalidate(ctx, r.store.Descriptor().Table)
	}
	return removed, err
}

func (r *resource[T]) Count(ctx context.Context) (int64, error) { return r.store.Count(ctx) }

func orNil[T any](rec *T, err error) (any, error) {
	if err != nil || rec == nil {
		return nil, err
	}
	return rec, nil
}

// searchRecords keeps rows where any text column contains q, ignoring case.
func searchRecords[T any](d *entity.Descriptor, rows []T, q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	var text []string
	for _, c := range d.Columns {
		if c.Type == entity.Text {
			text = append(text, c.Name)
		}
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v := reflect.ValueOf(row)
		for _, name := range text {
			f := reflect.Indirect(v.FieldByName(name))
			if f.IsValid() && f.Kind() == reflect.String && strings.Contains(strings.ToLower(f.String()), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
