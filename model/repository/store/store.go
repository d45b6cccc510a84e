// Package store is the table-agnostic record store. One Store serves one
// registered entity type; every operation runs in its own transaction.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/core/metrics"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// Filters is an exact-match conjunction of column = value.
type Filters map[string]any

type Store[T any] struct {
	db   *gorm.DB
	desc *entity.Descriptor
	log  *logger.Logger
}

// New returns a store for the registered record type T.
func New[T any](db *gorm.DB, log *logger.Logger) (*Store[T], error) {
	desc, ok := entity.For[T]()
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %T", ErrNotRegistered, zero)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Store[T]{db: db, desc: desc, log: log.WithComponent("store")}, nil
}

// MustNew is New for package-level wiring; it panics on an unregistered type.
func MustNew[T any](db *gorm.DB, log *logger.Logger) *Store[T] {
	s, err := New[T](db, log)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store[T]) Descriptor() *entity.Descriptor { return s.desc }

func (s *Store[T]) observe(op string, start time.Time, err error) {
	metrics.StoreOperations.WithLabelValues(s.desc.Table, op, metrics.Outcome(err)).Inc()
	metrics.StoreDuration.WithLabelValues(s.desc.Table, op).Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Error("store operation failed", "table", s.desc.Table, "op", op, "error", err)
	}
}

func (s *Store[T]) column(name string) (string, error) {
	if name == "" {
		return s.desc.PrimaryKey, nil
	}
	if !s.desc.Has(name) {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownColumn, s.desc.Table, name)
	}
	return name, nil
}

func eq(column string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

// GetAll returns every row matching filters, ordered by primary key.
func (s *Store[T]) GetAll(ctx context.Context, filters Filters) (rows []T, err error) {
	defer func(start time.Time) { s.observe("get_all", start, err) }(time.Now())

	cols := make([]string, 0, len(filters))
	for col := range filters {
		if _, err := s.column(col); err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	rows = []T{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(new(T))
		for _, col := range cols {
			q = q.Where(eq(col, filters[col]))
		}
		return q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.desc.PrimaryKey}}).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", s.desc.Table, err)
	}
	s.log.Info("retrieved records", "table", s.desc.Table, "count", len(rows))
	return rows, nil
}

func (s *Store[T]) first(tx *gorm.DB, column string, id any) (*T, error) {
	var rows []T
	if err := tx.Where(eq(column, id)).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetByID returns the row whose idColumn equals id, or nil when there is none.
// An empty idColumn means the primary key.
func (s *Store[T]) GetByID(ctx context.Context, idColumn string, id any) (rec *T, err error) {
	defer func(start time.Time) { s.observe("get_by_id", start, err) }(time.Now())

	col, err := s.column(idColumn)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err = s.first(tx, col, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %s %s=%v: %w", s.desc.Table, col, id, err)
	}
	if rec == nil {
		s.log.Warn("record not found", "table", s.desc.Table, "column", col, "id", id)
		return nil, nil
	}
	s.log.Info("found record", "table", s.desc.Table, "column", col, "id", id)
	return rec, nil
}

// prepare coerces fields to column types and fills declared defaults.
// Unknown keys are logged and dropped.
func (s *Store[T]) prepare(fields map[string]any) (map[string]any, error) {
	values := make(map[string]any, len(s.desc.Columns))
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		col, ok := s.desc.Column(name)
		if !ok {
			s.log.Warn("ignoring unknown column", "table", s.desc.Table, "column", name)
			continue
		}
		v, err := Coerce(col, fields[name])
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	for _, col := range s.desc.Columns {
		if _, supplied := values[col.Name]; supplied || !col.HasDefault {
			continue
		}
		v, err := defaultValue(col)
		if err != nil {
			return nil, fmt.Errorf("default for %s.%s: %w", s.desc.Table, col.Name, err)
		}
		values[col.Name] = v
	}
	return values, nil
}

func decode(values map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

// Create coerces and persists a new row and returns it as stored. The primary
// key comes from the table's sequence unless fields supplies one.
func (s *Store[T]) Create(ctx context.Context, fields map[string]any) (rec *T, err error) {
	defer func(start time.Time) { s.observe("create", start, err) }(time.Now())

	if s.desc.ReadOnly {
		return nil, fmt.Errorf("create %s: %w", s.desc.Table, ErrReadOnly)
	}
	values, err := s.prepare(fields)
	if err != nil {
		return nil, err
	}
	pk := s.desc.PrimaryKey

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if v, ok := values[pk]; !ok || v == nil || reflect.ValueOf(v).IsZero() {
			id, err := nextID(tx, s.desc.Table, pk)
			if err != nil {
				return err
			}
			col, _ := s.desc.Column(pk)
			if values[pk], err = Coerce(col, id); err != nil {
				return err
			}
		} else if id, err := toInt(v); err == nil {
			if err := bumpSequence(tx, s.desc.Table, id); err != nil {
				return err
			}
		}

		record := new(T)
		if err := decode(values, record); err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		rec, err = s.first(tx, pk, values[pk])
		if err == nil && rec == nil {
			err = errors.New("created row not readable")
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.desc.Table, err)
	}
	s.log.Info("created record", "table", s.desc.Table, "id", values[pk])
	return rec, nil
}

// Update applies fields verbatim to the row matched by idColumn. Unknown
// columns and the primary key are skipped. Returns nil when no row matched.
func (s *Store[T]) Update(ctx context.Context, idColumn string, id any, fields map[string]any) (rec *T, err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())

	if s.desc.ReadOnly {
		return nil, fmt.Errorf("update %s: %w", s.desc.Table, ErrReadOnly)
	}
	col, err := s.column(idColumn)
	if err != nil {
		return nil, err
	}
	pk := s.desc.PrimaryKey

	updates := make(map[string]any, len(fields))
	for name, v := range fields {
		switch {
		case !s.desc.Has(name):
			s.log.Warn("column does not exist", "table", s.desc.Table, "column", name)
		case name == pk:
			s.log.Warn("primary key is not updatable", "table", s.desc.Table, "column", name)
		default:
			updates[name] = v
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.first(tx, col, id)
		if err != nil || current == nil {
			return err
		}
		key := s.desc.PrimaryKeyValue(current)
		if len(updates) > 0 {
			if err := tx.Model(new(T)).Where(eq(pk, key)).Updates(updates).Error; err != nil {
				return err
			}
		}
		rec, err = s.first(tx, pk, key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update %s %s=%v: %w", s.desc.Table, col, id, err)
	}
	if rec == nil {
		s.log.Warn("record not found", "table", s.desc.Table, "column", col, "id", id)
		return nil, nil
	}
	s.log.Info("updated record", "table", s.desc.Table, "column", col, "id", id, "fields", len(updates))
	return rec, nil
}

// Delete removes the row matched by idColumn and reports whether one existed.
func (s *Store[T]) Delete(ctx context.Context, idColumn string, id any) (removed bool, err error) {
	defer func(start time.Time) { s.observe("delete", start, err) }(time.Now())

	if s.desc.ReadOnly {
		return false, fmt.Errorf("delete %s: %w", s.desc.Table, ErrReadOnly)
	}
	col, err := s.column(idColumn)
	if err != nil {
		return false, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.first(tx, col, id)
		if err != nil || current == nil {
			return err
		}
		res := tx.Where(eq(s.desc.PrimaryKey, s.desc.PrimaryKeyValue(current))).Delete(new(T))
		removed = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, fmt.Errorf("delete %s %s=%v: %w", s.desc.Table, col, id, err)
	}
	if !removed {
		s.log.Warn("record not found", "table", s.desc.Table, "column", col, "id", id)
		return false, nil
	}
	s.log.Info("deleted record", "table", s.desc.Table, "column", col, "id", id)
	return true, nil
}

// DeleteMany deletes each id by primary key and returns the ids that existed.
// It stops at the first store failure.
func (s *Store[T]) DeleteMany(ctx context.Context, ids []any) ([]any, error) {
	removed := make([]any, 0, len(ids))
	for _, id := range ids {
		ok, err := s.Delete(ctx, "", id)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// Count returns the number of rows in the table.
func (s *Store[T]) Count(ctx context.Context) (n int64, err error) {
	defer func(start time.Time) { s.observe("count", start, err) }(time.Now())
	err = s.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}
