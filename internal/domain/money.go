package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a currency amount in minor units (cents). Arithmetic stays in
// integers; the float conversion exists only at the JSON boundary, where
// amounts are two-decimal numbers in the persisted documents.
type Money int64

// MoneyFromFloat converts a decimal amount (e.g. 12.99) to minor units,
// rounding half away from zero.
func MoneyFromFloat(f float64) Money {
	if f < 0 {
		return -MoneyFromFloat(-f)
	}
	return Money(f*100 + 0.5)
}

func (m Money) Float64() float64 { return float64(m) / 100 }

// Mul scales the amount by an item quantity.
func (m Money) Mul(qty int) Money { return m * Money(qty) }

// Percent returns p percent of the amount, rounded half up in minor units.
func (m Money) Percent(p int64) Money {
	n := int64(m) * p
	if n >= 0 {
		return Money((n + 50) / 100)
	}
	return Money((n - 50) / 100)
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	*m = MoneyFromFloat(f)
	return nil
}
