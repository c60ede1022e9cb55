// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; stored as NUMERIC(10,2).
type Money = decimal.Decimal

// Quantity represents an inventory quantity. The original schema keeps
// quantities as NUMERIC(10,2) (materials are counted in fractional units of
// measure), so it shares the decimal representation with Money.
type Quantity = decimal.Decimal

// NewMoney creates a Money value from a float.
// Prefer NewMoneyFromString for values parsed from user input.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

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

// NewQuantity creates a Quantity from an int.
func NewQuantity(n int64) Quantity {
	return decimal.NewFromInt(n)
}
