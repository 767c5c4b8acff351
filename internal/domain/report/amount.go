package report

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is the sentinel printed for any missing upstream value
const NotAvailable = "N/A"

// Amount is a money figure that may be unavailable
type Amount struct {
	value decimal.Decimal
	valid bool
}

// NewAmount wraps a known value
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, valid: true}
}

// UnavailableAmount is the amount of a sale without a usable total
func UnavailableAmount() Amount {
	return Amount{}
}

// CoerceAmount converts a value read from a record source into an Amount.
// It reports false for nil, unsupported types and non-numeric text.
func CoerceAmount(v any) (Amount, bool) {
	var (
		d   decimal.Decimal
		err error
	)
	switch x := v.(type) {
	case nil:
		return Amount{}, false
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return Amount{}, false
		}
		d = *x
	case decimal.NullDecimal:
		if !x.Valid {
			return Amount{}, false
		}
		d = x.Decimal
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Amount{}, false
		}
		d = decimal.NewFromFloat(x)
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return Amount{}, false
		}
		d = decimal.NewFromFloat32(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int32:
		d = decimal.NewFromInt32(x)
	case int64:
		d = decimal.NewFromInt(x)
	case json.Number:
		d, err = decimal.NewFromString(x.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(x))
	case []byte:
		d, err = decimal.NewFromString(strings.TrimSpace(string(x)))
	default:
		return Amount{}, false
	}
	if err != nil {
		return Amount{}, false
	}
	return NewAmount(d), true
}

// Decimal returns the value and whether it is available
func (a Amount) Decimal() (decimal.Decimal, bool) {
	return a.value, a.valid
}

// Valid reports whether the amount holds a number
func (a Amount) Valid() bool {
	return a.valid
}

// Fixed renders two-decimal fixed-point text, or the sentinel
func (a Amount) Fixed() string {
	if !a.valid {
		return NotAvailable
	}
	return a.value.StringFixed(2)
}

// Currency renders the amount with a dollar sign, or the sentinel verbatim
func (a Amount) Currency() string {
	if !a.valid {
		return NotAvailable
	}
	return "$" + a.value.StringFixed(2)
}
