// Package money represents currency amounts as integer hundredths.
//
// Amounts are stored and summed as int64 cents, never as floats, so a
// value like 42.50 survives a storage round-trip exactly. The float
// conversion happens only at the JSON boundary, where every amount is a
// multiple of 0.01 and therefore exactly representable as a float64.
package money

import (
	"fmt"
	"math"
	"strconv"
)

// Cents is a currency amount in hundredths of a unit. Negative values are
// allowed (refunds).
type Cents int64

// FromFloat converts a decimal amount to Cents, rounding to the nearest
// hundredth. It reports false for NaN or infinity.
func FromFloat(f float64) (Cents, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return Cents(math.Round(f * 100)), true
}

// Float64 returns the amount as a decimal number of currency units.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimal places, e.g. "42.50".
func (c Cents) String() string {
	return strconv.FormatFloat(c.Float64(), 'f', 2, 64)
}

// MarshalJSON encodes the amount as a JSON number with two decimal places.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("money: parsing amount %q: %w", string(data), err)
	}
	v, ok := FromFloat(f)
	if !ok {
		return fmt.Errorf("money: amount %q is not a finite number", string(data))
	}
	*c = v
	return nil
}
