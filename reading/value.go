package reading

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawValue is the measurement exactly as the API sent it. The API encodes
// numbers as text but a bare JSON number is tolerated too.
type RawValue string

// UnmarshalJSON keeps the text of a JSON string or number.
func (v *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	*v = RawValue(b)
	return nil
}

// Value is the outcome of parsing a RawValue. When OK is false Float holds NaN.
type Value struct {
	Float float64
	OK    bool
}

// Invalid is the Value produced by unparseable input.
var Invalid = Value{Float: math.NaN()}

// ParseValue parses a measurement. NaN and infinities are rejected so OK
// always means a finite number.
func ParseValue(raw string) Value {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Invalid
	}
	return Value{Float: f, OK: true}
}

// MarshalJSON encodes invalid values as null so charts render a gap.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.Float, 'f', -1, 64), nil
}
