// Package types provides common value types and arithmetic helpers.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// DefaultMoneyScale is the number of fractional digits money is rendered with.
const DefaultMoneyScale int32 = 2

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// LineAmount is count × price for one document line.
func LineAmount(count int64, price Money) Money {
	return price.Mul(decimal.NewFromInt(count))
}

// RoundMoney rounds half away from zero to scale digits.
func RoundMoney(m Money, scale int32) Money {
	return m.Round(scale)
}

// DivOrNil returns num/den, or nil when den is zero.
func DivOrNil(num, den Money) *Money {
	if den.IsZero() {
		return nil
	}
	v := num.DivRound(den, 8)
	return &v
}

// --- Percent helpers ---
// Percentages, shares and indices are display values and use float64.

// PctChange is (current-previous)/previous*100, nil when previous is zero.
func PctChange(current, previous Money) *float64 {
	if previous.IsZero() {
		return nil
	}
	v, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	v = Round2(v)
	return &v
}

// PctChangeInt is PctChange for counters.
func PctChangeInt(current, previous int64) *float64 {
	return PctChange(decimal.NewFromInt(current), decimal.NewFromInt(previous))
}

// Share is part/total*100, nil when total is zero.
func Share(part, total Money) *float64 {
	if total.IsZero() {
		return nil
	}
	v, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Float64()
	v = Round2(v)
	return &v
}

// ShareInt is Share for counters.
func ShareInt(part, total int64) *float64 {
	return Share(decimal.NewFromInt(part), decimal.NewFromInt(total))
}

// Round2 rounds a display value to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
