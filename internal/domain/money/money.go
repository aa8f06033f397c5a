// Package money defines the rounding rules for monetary amounts. Every
// component that compares or reconciles amounts goes through a Rounder so
// there is exactly one definition of "equal" in the engine.
package money

import (
	"github.com/shopspring/decimal"
)

// DefaultPlaces is the rounding precision used when no explicit
// configuration is supplied: two decimal places, i.e. one hundredth of a
// currency unit.
const DefaultPlaces int32 = 2

// Rounder rounds amounts to a fixed number of decimal places and decides
// monetary equality at that precision. The zero value is unusable; construct
// with New.
type Rounder struct {
	places int32
}

// New creates a Rounder for the given number of decimal places.
func New(places int32) Rounder {
	return Rounder{places: places}
}

// Default returns a Rounder at DefaultPlaces.
func Default() Rounder {
	return New(DefaultPlaces)
}

// Places returns the configured number of decimal places.
func (r Rounder) Places() int32 {
	return r.places
}

// Round rounds half away from zero to the configured precision.
func (r Rounder) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(r.places)
}

// Unit returns the smallest representable amount at the configured
// precision, e.g. 0.01 for two decimal places.
func (r Rounder) Unit() decimal.Decimal {
	return decimal.New(1, -r.places)
}

// Equal reports whether two amounts are equal at the configured precision:
// their difference is strictly smaller than one rounding unit.
func (r Rounder) Equal(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(r.Unit())
}

// Sum rounds the sum of the given amounts to the configured precision.
func (r Rounder) Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return r.Round(total)
}
