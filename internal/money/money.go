// Package money holds monetary values in minor units (cents) so amounts
// survive formatting and re-parsing without floating-point drift.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a non-negative money value in cents.
type Amount int64

// FromFloat converts a dollar value to an Amount, rounding to the nearest
// cent.
func FromFloat(dollars float64) Amount {
	return Amount(math.Round(dollars * 100))
}

// Float64 returns the value in dollars.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// Cents returns the value in cents.
func (a Amount) Cents() int64 {
	return int64(a)
}

// String renders the amount the way a user would say it: whole-dollar
// values drop the fraction, everything else keeps two decimal places.
func (a Amount) String() string {
	if a%100 == 0 {
		return strconv.FormatInt(int64(a)/100, 10)
	}
	return fmt.Sprintf("%d.%02d", int64(a)/100, int64(a)%100)
}

// Parse reads a plain decimal amount string ("5.50", "11000") back into
// an Amount. It accepts exactly what String produces plus an optional
// leading "$".
func Parse(s string) (Amount, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return FromFloat(f), true
}
