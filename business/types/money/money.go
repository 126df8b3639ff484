// Package money represents a monetary amount in the system. Amounts are
// held in cents to avoid float drift across invoice totals.
package money

import (
	"fmt"
	"math"
	"strconv"
)

// Money represents a monetary amount in cents.
type Money struct {
	cents int64
}

// FromCents constructs a money value from a cents amount.
func FromCents(cents int64) Money {
	return Money{cents}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Value returns the amount in currency units.
func (m Money) Value() float64 {
	return float64(m.cents) / 100
}

// String returns the decimal representation of the amount.
func (m Money) String() string {
	return strconv.FormatFloat(m.Value(), 'f', 2, 64)
}

// Equal provides support for the go-cmp package and testing.
func (m Money) Equal(m2 Money) bool {
	return m.cents == m2.cents
}

// MarshalText provides support for logging and any marshal needs.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// =============================================================================

// Parse parses a non-negative decimal amount into a money value.
func Parse(value float64) (Money, error) {
	if value < 0 {
		return Money{}, fmt.Errorf("invalid amount %f", value)
	}

	return Money{int64(math.Round(value * 100))}, nil
}

// MustParse parses the value and returns a money value. If an error occurs
// the function panics.
func MustParse(value float64) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return m
}
