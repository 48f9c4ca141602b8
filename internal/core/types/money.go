// Package types provides common type utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; storage keeps
// minor units (kopecks/cents) as int64.
type Money = decimal.Decimal

// minorScale is the number of decimal places stored (minor units).
const minorScale = 2

// NewMoneyFromString parses a decimal string ("123.45").
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney parses a decimal string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MoneyToMinor converts a Money value to minor units for storage.
// Rounds half away from zero at two decimal places.
func MoneyToMinor(m Money) int64 {
	return m.Round(minorScale).Shift(minorScale).IntPart()
}

// MoneyFromMinor restores a Money value from stored minor units.
func MoneyFromMinor(v int64) Money {
	return decimal.New(v, -minorScale)
}

// ZeroMoney returns the zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}
