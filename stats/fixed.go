package stats

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Fixed is a statistic rounded to two decimal places.
type Fixed struct {
	d   decimal.Decimal
	nan bool
}

// NaN is the Fixed produced from non-numeric input.
var NaN = Fixed{nan: true}

// Round2 rounds f half away from zero to two decimals.
func Round2(f float64) Fixed {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NaN
	}
	return Fixed{d: decimal.NewFromFloat(f).Round(2)}
}

// Float returns the rounded value.
func (f Fixed) Float() float64 {
	if f.nan {
		return math.NaN()
	}
	return f.d.InexactFloat64()
}

// IsNaN reports whether the statistic could not be computed.
func (f Fixed) IsNaN() bool { return f.nan }

func (f Fixed) String() string {
	if f.nan {
		return "NaN"
	}
	return f.d.StringFixed(2)
}

// MarshalJSON writes the two decimal string, e.g. "15.00".
func (f Fixed) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}
