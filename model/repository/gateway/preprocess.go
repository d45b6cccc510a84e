package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/iasolb/EdgewaterInventoryManager/model/repository/store"
)

// ParseDecimal accepts numbers and numeric strings. Empty input becomes null.
func ParseDecimal(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case decimal.Decimal:
		return decimal.NullDecimal{Decimal: x, Valid: true}, nil
	case decimal.NullDecimal:
		return x, nil
	case float64:
		return decimal.NullDecimal{Decimal: decimal.NewFromFloat(x), Valid: true}, nil
	case int:
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(int64(x)), Valid: true}, nil
	case int64:
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(x), Valid: true}, nil
	case json.Number:
		return ParseDecimal(x.String())
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.NullDecimal{}, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		return decimal.NullDecimal{Decimal: d, Valid: true}, nil
	}
	return nil, fmt.Errorf("unsupported type %T", v)
}

// ParseTimestamp accepts time values and the layouts of store.TimeLayouts.
// Empty input becomes null.
func ParseTimestamp(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return x, nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, nil
		}
		return store.ParseTime(x)
	}
	return nil, fmt.Errorf("unsupported type %T", v)
}

// ParseDate is ParseTimestamp truncated to the calendar day.
func ParseDate(v any) (any, error) {
	t, err := ParseTimestamp(v)
	if err != nil || t == nil {
		return t, err
	}
	ts := t.(time.Time)
	y, m, d := ts.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, ts.Location())), nil
}

func ParseBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return store.ParseBool(x)
	case float64:
		return x != 0, nil
	case int:
		return x != 0, nil
	}
	return nil, fmt.Errorf("unsupported type %T", v)
}

// TrimText trims surrounding whitespace from strings and passes other values through.
func TrimText(v any) (any, error) {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s), nil
	}
	return v, nil
}
