package store

import (
	"errors"
	"fmt"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

var (
	// ErrUnknownColumn is returned when a filter or id column is not mapped.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrReadOnly is returned for writes against a view projection.
	ErrReadOnly = errors.New("entity is read-only")
	// ErrNotRegistered is returned by New for a type missing from the entity registry.
	ErrNotRegistered = errors.New("entity not registered")
)

// CoercionError reports a create value that cannot be converted to its column type.
type CoercionError struct {
	Field string
	Value any
	Type  entity.ColumnType
	Err   error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %s=%v to %s: %v", e.Field, e.Value, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot convert %s=%v to %s", e.Field, e.Value, e.Type)
}

func (e *CoercionError) Unwrap() error { return e.Err }
