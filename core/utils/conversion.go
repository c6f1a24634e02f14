package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotNumeric is returned when a value cannot be read as a number.
var ErrNotNumeric = errors.New("value is not numeric")

// timeLayouts are tried in order by ParseTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInt converts numbers and numeric strings to int64.
// Fractional values and non-numeric strings are rejected rather than truncated.
func ParseInt(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d out of range", ErrNotNumeric, v)
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: %v", ErrNotNumeric, v)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if v >= 9.223372036854775807e18 || v < -9.223372036854775808e18 {
			return 0, fmt.Errorf("%w: %v out of range", ErrNotNumeric, v)
		}
		return int64(v), nil
	case float32:
		return ParseInt(float64(v))
	case json.Number:
		return ParseInt(string(v))
	case string:
		s := strings.TrimSpace(v)
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q out of range", ErrNotNumeric, v)
		}
		// "12.0" is accepted, "12.5" is not.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, v)
		}
		return ParseInt(f)
	case []byte:
		return ParseInt(string(v))
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, val)
	}
}

// ParseDecimal converts numbers and numeric strings to a decimal.
// A comma decimal separator ("12,50") is accepted.
func ParseDecimal(val any) (decimal.Decimal, error) {
	switch v := val.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case json.Number:
		return ParseDecimal(string(v))
	case string:
		s := strings.TrimSpace(v)
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, v)
		}
		return d, nil
	case []byte:
		return ParseDecimal(string(v))
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", ErrNotNumeric, val)
	}
}

// ParseTime reads ISO-8601 timestamps and plain dates.
// Values without a zone are interpreted as UTC.
func ParseTime(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
	default:
		return time.Time{}, fmt.Errorf("invalid timestamp type %T", val)
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (non-zero is true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint32, uint16, uint8, float64, float32, json.Number:
		i, err := ParseInt(v)
		return err == nil && i != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
