package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount used when presenting projection figures.
// The projection engine works in float64; values are converted here only for
// rounding and display.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from a float64. NaN and infinities become zero;
// use NewMoneyChecked to detect them.
func NewMoney(value float64) Money {
	m, _ := NewMoneyChecked(value)
	return m
}

// NewMoneyChecked creates a Money from a float64 and reports whether the value was finite.
func NewMoneyChecked(value float64) (Money, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero(), false
	}
	return Money{decimal.NewFromFloat(value)}, true
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds to two decimal places, half away from zero.
func (m Money) Round() Money { return m.RoundTo(2) }

// RoundTo rounds to the given number of decimal places.
func (m Money) RoundTo(places int32) Money {
	return Money{m.Decimal.Round(places)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}


// ShareOf returns m as a percentage of total, or zero when total is zero.
func (m Money) ShareOf(total Money) decimal.Decimal {
	if total.Decimal.IsZero() {
		return decimal.Zero
	}
	return m.Decimal.Div(total.Decimal).Mul(decimal.NewFromInt(100))
}

// Float64 returns the nearest float64.
func (m Money) Float64() float64 {
	f, _ := m.Decimal.Float64()
	return f
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
