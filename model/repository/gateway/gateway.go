// Package gateway applies allow-listed, preprocessed updates on top of a record store.
package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
)

// FieldPolicy selects what happens to fields outside the allow-list.
type FieldPolicy int

const (
	// DropDisallowed logs and discards disallowed fields.
	DropDisallowed FieldPolicy = iota
	// RejectDisallowed fails the whole update when any field is disallowed.
	RejectDisallowed
)

func (p FieldPolicy) String() string {
	if p == RejectDisallowed {
		return "reject"
	}
	return "drop"
}

// Preprocessor converts a raw update value before it reaches the store.
type Preprocessor func(value any) (any, error)

type Options struct {
	// Allowed lists updatable columns. Nil allows every column.
	Allowed       []string
	Preprocessors map[string]Preprocessor
	Mode          FieldPolicy
	Log           *logger.Logger
}

// Updater is the subset of the record store the gateway needs.
type Updater[T any] interface {
	GetByID(ctx context.Context, idColumn string, id any) (*T, error)
	Update(ctx context.Context, idColumn string, id any, fields map[string]any) (*T, error)
}

// DisallowedFieldError is returned in RejectDisallowed mode.
type DisallowedFieldError struct {
	Fields []string
}

func (e *DisallowedFieldError) Error() string {
	return fmt.Sprintf("cannot update %s: read-only or from a joined table", strings.Join(e.Fields, ", "))
}

// InvalidValueError is returned when a preprocessor rejects a value.
type InvalidValueError struct {
	Field string
	Value any
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// Update loads the record, filters updates through opts and delegates to u.
// A missing record yields (nil, nil). When nothing survives filtering the
// current record is returned unchanged.
func Update[T any](ctx context.Context, u Updater[T], idColumn string, id any, updates map[string]any, opts Options) (*T, error) {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}

	current, err := u.GetByID(ctx, idColumn, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		log.Warn("record not found", "column", idColumn, "id", id)
		return nil, nil
	}

	var allowed map[string]struct{}
	if opts.Allowed != nil {
		allowed = make(map[string]struct{}, len(opts.Allowed))
		for _, f := range opts.Allowed {
			allowed[f] = struct{}{}
		}
	}

	filtered := make(map[string]any, len(updates))
	var rejected []string
	for field, value := range updates {
		if allowed != nil {
			if _, ok := allowed[field]; !ok {
				rejected = append(rejected, field)
				continue
			}
		}
		filtered[field] = value
	}

	if len(rejected) > 0 {
		sort.Strings(rejected)
		log.Warn("filtered out read-only fields", "fields", rejected, "mode", opts.Mode.String())
		if opts.Mode == RejectDisallowed {
			return nil, &DisallowedFieldError{Fields: rejected}
		}
	}
	if len(filtered) == 0 {
		log.Warn("no valid fields to update after filtering", "column", idColumn, "id", id)
		return current, nil
	}

	fields := make([]string, 0, len(filtered))
	for f := range filtered {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		pre, ok := opts.Preprocessors[f]
		if !ok || pre == nil {
			continue
		}
		v, err := pre(filtered[f])
		if err != nil {
			log.Error("preprocessing failed", "field", f, "error", err)
			return nil, &InvalidValueError{Field: f, Value: filtered[f], Err: err}
		}
		log.Debug("preprocessed field", "field", f, "from", filtered[f], "to", v)
		filtered[f] = v
	}

	return u.Update(ctx, idColumn, id, filtered)
}
