package store

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// TimeLayouts are accepted for timestamp and date strings, tried in order.
var TimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
}

// ParseTime parses s with the first matching layout of TimeLayouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// ParseBool accepts strconv forms plus yes/no and y/n.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off", "":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// Coerce converts v to the Go type of col. Nil stays nil.
func Coerce(col entity.Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		v = rv.Elem().Interface()
	}
	out, err := coerce(col, v)
	if err != nil {
		return nil, &CoercionError{Field: col.Name, Value: v, Type: col.Type, Err: err}
	}
	return out, nil
}

func coerce(col entity.Column, v any) (any, error) {
	switch col.Type {
	case entity.Text:
		return toText(v), nil
	case entity.Integer:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(col.GoType).Interface(), nil
	case entity.Float:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(col.GoType).Interface(), nil
	case entity.Boolean:
		return toBool(v)
	case entity.Timestamp:
		return toTime(v)
	case entity.Date:
		t, err := toTime(v)
		if err != nil {
			return nil, err
		}
		y, m, d := t.Date()
		return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, t.Location())), nil
	case entity.Decimal:
		d, err := toDecimal(v)
		if err != nil {
			return nil, err
		}
		if col.GoType == reflect.TypeOf(decimal.NullDecimal{}) {
			return decimal.NullDecimal{Decimal: d, Valid: true}, nil
		}
		return d, nil
	}
	return nil, fmt.Errorf("unsupported column type %s", col.Type)
}

func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", x)
		}
		return int64(x), nil
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt(f)
	case decimal.Decimal:
		if !x.IsInteger() {
			return 0, fmt.Errorf("%s is not an integer", x)
		}
		return x.IntPart(), nil
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", x)
		}
		return floatToInt(f)
	}
	return 0, fmt.Errorf("unsupported value type %T", v)
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", x)
		}
		return f, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return ParseBool(x)
	}
	n, err := toInt(v)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case datatypes.Date:
		return time.Time(x), nil
	case string:
		return ParseTime(x)
	}
	return time.Time{}, fmt.Errorf("unsupported value type %T", v)
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero, fmt.Errorf("null decimal")
		}
		return x.Decimal, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(x))
	}
	n, err := toInt(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(n), nil
}

// defaultValue converts a column's declared default to its Go type.
func defaultValue(col entity.Column) (any, error) {
	raw := strings.Trim(col.Default, "'\"")
	if strings.EqualFold(raw, "null") {
		return nil, nil
	}
	return Coerce(col, raw)
}
