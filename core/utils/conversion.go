package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToInt reads a loosely typed document value as int. JSON numbers arrive as
// float64, CMS fields sometimes as strings; anything unreadable is 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case uint:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		return ToInt(string(v))
	case []byte:
		return ToInt(string(v))
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(s, 64)
		return int(f)
	default:
		return ToInt(fmt.Sprint(v))
	}
}

// ToString renders a document value as text. nil becomes "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ToBool accepts booleans, 1/0 and "true"/"1". A missing value is false.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(strings.TrimSpace(v), "true")
	case []byte:
		return ToBool(string(v))
	case nil:
		return false
	default:
		return ToInt(v) == 1
	}
}

// ToTime parses RFC 3339 timestamps and plain dates. Unparseable values return nil.
func ToTime(val any) *time.Time {
	switch v := val.(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if v == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
	}
	return nil
}

// ToDecimal reads a price. Shops send prices as strings ("1990", "1990.50")
// and empty strings for unpriced products, which return nil.
func ToDecimal(val any) *decimal.Decimal {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := val.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		return v
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case json.Number:
		d, err = decimal.NewFromString(string(v))
	default:
		s := strings.TrimSpace(ToString(v))
		if s == "" {
			return nil
		}
		d, err = decimal.NewFromString(s)
	}
	if err != nil {
		return nil
	}
	return &d
}
