package entity

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm/schema"
)

// ColumnType is the semantic type used for create-time coercion.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Float
	Boolean
	Timestamp
	Date
	Decimal
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Timestamp:
		return "timestamp"
	case Date:
		return "date"
	case Decimal:
		return "decimal"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// Column describes one mapped column. Name is both the database column and the Go field name.
type Column struct {
	Name       string
	Type       ColumnType
	Nullable   bool
	Default    string
	HasDefault bool
	// GoType is the field type with pointers removed.
	GoType reflect.Type
}

// Descriptor is the registry entry for one record type.
type Descriptor struct {
	Tag        string
	Table      string
	PrimaryKey string
	Columns    []Column
	ReadOnly   bool

	model reflect.Type
	index map[string]int
}

// Column returns the named column.
func (d *Descriptor) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.Columns[i], true
}

func (d *Descriptor) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnNames returns column names in declaration order.
func (d *Descriptor) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// New returns a pointer to a zero record.
func (d *Descriptor) New() any {
	return reflect.New(d.model).Interface()
}

// NewSlice returns a pointer to an empty slice of records, suitable for Find.
func (d *Descriptor) NewSlice() any {
	return reflect.New(reflect.SliceOf(d.model)).Interface()
}

// Model returns the record type.
func (d *Descriptor) Model() reflect.Type { return d.model }

// PrimaryKeyValue reads the primary key from a record or record pointer.
func (d *Descriptor) PrimaryKeyValue(rec any) any {
	v := reflect.Indirect(reflect.ValueOf(rec))
	if v.Kind() != reflect.Struct {
		return nil
	}
	return v.FieldByName(d.PrimaryKey).Interface()
}

var (
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	timeType        = reflect.TypeOf(time.Time{})
	dateType        = reflect.TypeOf(datatypes.Date{})
)

func columnType(t reflect.Type) (ColumnType, bool, reflect.Type, error) {
	nullable := false
	if t.Kind() == reflect.Ptr {
		nullable = true
		t = t.Elem()
	}
	switch t {
	case nullDecimalType:
		return Decimal, true, t, nil
	case decimalType:
		return Decimal, nullable, t, nil
	case timeType:
		return Timestamp, nullable, t, nil
	case dateType:
		return Date, nullable, t, nil
	}
	switch t.Kind() {
	case reflect.String:
		return Text, nullable, t, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, nullable, t, nil
	case reflect.Float32, reflect.Float64:
		return Float, nullable, t, nil
	case reflect.Bool:
		return Boolean, nullable, t, nil
	}
	return 0, false, nil, fmt.Errorf("unsupported field type %s", t)
}

var schemaCache = &sync.Map{}

// describe builds a descriptor from the gorm schema of model.
func describe(tag string, model any, readOnly bool) (*Descriptor, error) {
	s, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", tag, err)
	}
	if s.PrioritizedPrimaryField == nil {
		return nil, fmt.Errorf("%s: no primary key", tag)
	}
	d := &Descriptor{
		Tag:        tag,
		Table:      s.Table,
		PrimaryKey: s.PrioritizedPrimaryField.DBName,
		ReadOnly:   readOnly,
		model:      s.ModelType,
		index:      make(map[string]int),
	}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		if f.DBName != f.Name {
			return nil, fmt.Errorf("%s.%s: column name %q must match the field name", tag, f.Name, f.DBName)
		}
		ct, nullable, goType, err := columnType(f.FieldType)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", tag, f.Name, err)
		}
		d.index[f.DBName] = len(d.Columns)
		d.Columns = append(d.Columns, Column{
			Name:       f.DBName,
			Type:       ct,
			Nullable:   nullable,
			Default:    f.DefaultValue,
			HasDefault: f.DefaultValue != "",
			GoType:     goType,
		})
	}
	return d, nil
}

var registry = struct {
	sync.RWMutex
	byTag  map[string]*Descriptor
	byType map[reflect.Type]*Descriptor
}{
	byTag:  make(map[string]*Descriptor),
	byType: make(map[reflect.Type]*Descriptor),
}

// Register adds T under tag. Called from init; panics on a malformed record type
// or a duplicate tag.
func Register[T any](tag string, readOnly bool) *Descriptor {
	d, err := describe(tag, new(T), readOnly)
	if err != nil {
		panic("entity: " + err.Error())
	}
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.byTag[tag]; dup {
		panic("entity: duplicate tag " + tag)
	}
	registry.byTag[tag] = d
	registry.byType[d.model] = d
	return d
}

// ByTag looks a descriptor up by its entity tag.
func ByTag(tag string) (*Descriptor, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.byTag[tag]
	return d, ok
}

// For returns the descriptor registered for T.
func For[T any]() (*Descriptor, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.byType[reflect.TypeOf((*T)(nil)).Elem()]
	return d, ok
}

// All returns every descriptor sorted by tag.
func All() []*Descriptor {
	registry.RLock()
	out := make([]*Descriptor, 0, len(registry.byTag))
	for _, d := range registry.byTag {
		out = append(out, d)
	}
	registry.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Tables returns the writable descriptors sorted by tag.
func Tables() []*Descriptor {
	var out []*Descriptor
	for _, d := range All() {
		if !d.ReadOnly {
			out = append(out, d)
		}
	}
	return out
}

// Models returns one zero record per writable table, for AutoMigrate.
func Models() []any {
	tables := Tables()
	out := make([]any, len(tables))
	for i, d := range tables {
		out[i] = d.New()
	}
	return out
}
