// Package models defines data structures for spreadsheet decoding and wish selection.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Cell represents one cell of a query response row.
type Cell struct {
	// V is the raw typed value: string, int64, float64, bool, or nil when absent.
	V interface{} `json:"v"`
	// F is the formatted value (nil if the endpoint did not send one).
	F *string `json:"f,omitempty"`
}

// UnmarshalJSON decodes a cell, coercing numbers to int64 when integral.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		V json.RawMessage `json:"v"`
		F *string         `json:"f"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.F = raw.F
	v, err := decodeScalar(raw.V)
	if err != nil {
		return err
	}
	c.V = v
	return nil
}

// decodeScalar decodes a JSON value, coercing numbers through NumberValue.
// An absent value decodes to nil.
func decodeScalar(data json.RawMessage) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		return NumberValue(n.String()), nil
	}
	return v, nil
}

// Value returns the raw value, falling back to the formatted value.
func (c *Cell) Value() interface{} {
	if c == nil {
		return nil
	}
	if c.V != nil {
		return c.V
	}
	if c.F != nil {
		return *c.F
	}
	return nil
}

// NumberValue parses a numeric literal.
// Returns int64 for integers, float64 for decimals, or the original string
// (also for NaN and infinities, which JSON cannot carry).
func NumberValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return s
		}
		if f == float64(int64(f)) && f >= -1<<53 && f <= 1<<53 {
			return int64(f)
		}
		return f
	}
	return s
}

// Text renders a value the way the widget displays it.
// Floats print like script numbers: shortest digits, exponent form outside
// [1e-6, 1e21). nil renders as "".
func Text(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// "1e-07" -> "1e-7", "1e+21" stays
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
