package reconcile

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"returns-bridge/core/utils"

	"github.com/shopspring/decimal"
)

// Value is a loosely typed JSON scalar.
// Base44 serializes numbers either as JSON numbers or as numeric strings, so the
// raw value is kept and converted on demand. Conversion errors surface during
// validation instead of failing the whole request body.
type Value struct {
	raw any
}

// NewValue wraps a Go value. Mainly useful for tests and the legacy payload mapping.
func NewValue(v any) Value {
	return Value{raw: v}
}

// UnmarshalJSON keeps numbers as json.Number so no precision is lost.
func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	v.raw = raw
	return nil
}

// MarshalJSON writes the raw value back unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// V returns the raw value.
func (v Value) V() any {
	return v.raw
}

// Present reports whether the value is set to something other than null or a blank string.
func (v Value) Present() bool {
	switch r := v.raw.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(r) != ""
	default:
		return true
	}
}

// Int parses the value as an integer.
func (v Value) Int() (int64, error) {
	return utils.ParseInt(v.raw)
}

// Decimal parses the value as a decimal.
func (v Value) Decimal() (decimal.Decimal, error) {
	return utils.ParseDecimal(v.raw)
}

// Bool reads true, 1, "1" and "true" as true; everything else is false.
func (v Value) Bool() bool {
	return utils.ToBool(v.raw)
}

// String returns the value as trimmed text.
func (v Value) String() string {
	return strings.TrimSpace(utils.ToString(v.raw))
}

// Time parses the value as an ISO-8601 timestamp.
func (v Value) Time() (time.Time, error) {
	return utils.ParseTime(v.raw)
}
