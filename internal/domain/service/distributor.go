package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/money"
)

// Strategy selects how an amount is split across installment periods.
type Strategy string

const (
	// StrategyFlatLast splits evenly and pushes the rounding residual onto
	// the last part.
	StrategyFlatLast Strategy = "FLAT-LAST"
	// StrategyFlatFirst splits evenly and pushes the rounding residual onto
	// the first part.
	StrategyFlatFirst Strategy = "FLAT-FIRST"
	// StrategyReducing computes a reducing-balance (EMI) schedule; it needs
	// an annual rate.
	StrategyReducing Strategy = "REDUCING"
)

// Distribution is the outcome of splitting an amount into parts. Principal
// always has exactly one element per part and sums exactly to the input
// total at the configured precision. Interest is all zeros for the flat
// strategies and period-specific for REDUCING, where EMI is also set.
type Distribution struct {
	Principal []decimal.Decimal
	Interest  []decimal.Decimal
	EMI       decimal.Decimal
}

// DistributeOptions carries strategy-specific parameters.
type DistributeOptions struct {
	// AnnualRate is the annual interest rate in percent, required by
	// StrategyReducing.
	AnnualRate decimal.Decimal
}

// Distributor splits monetary totals into per-period parts without losing a
// single rounding unit. Every intermediate figure is rounded independently
// and the residual is reconciled only at the boundary element, so the
// emitted schedule always sums to the contractual total.
type Distributor struct {
	rounder money.Rounder
}

// NewDistributor creates a Distributor using the given rounding rules.
func NewDistributor(r money.Rounder) *Distributor {
	return &Distributor{rounder: r}
}

// Rounder exposes the distributor's rounding rules so collaborating
// components share the same definition of monetary equality.
func (d *Distributor) Rounder() money.Rounder {
	return d.rounder
}

// Distribute splits total into parts under the given strategy. Callers must
// guarantee parts > 0; REDUCING without a positive annual rate fails with
// ErrInvalidArgument.
func (d *Distributor) Distribute(total decimal.Decimal, parts int, strategy Strategy, opts DistributeOptions) (Distribution, error) {
	if strategy == StrategyReducing {
		if opts.AnnualRate.LessThanOrEqual(decimal.Zero) {
			return Distribution{}, fmt.Errorf("%w: annual rate is required for REDUCING strategy", model.ErrInvalidArgument)
		}
		return d.reducingSchedule(total, opts.AnnualRate, parts), nil
	}

	r := d.rounder
	base := r.Round(total.Div(decimal.NewFromInt(int64(parts))))
	amounts := make([]decimal.Decimal, parts)
	for i := range amounts {
		amounts[i] = base
	}

	actual := r.Round(base.Mul(decimal.NewFromInt(int64(parts))))
	diff := r.Round(total.Sub(actual))

	if !diff.IsZero() {
		switch strategy {
		case StrategyFlatFirst:
			amounts[0] = r.Round(amounts[0].Add(diff))
		default:
			amounts[parts-1] = r.Round(amounts[parts-1].Add(diff))
		}
	}

	interest := make([]decimal.Decimal, parts)
	for i := range interest {
		interest[i] = decimal.Zero
	}

	return Distribution{Principal: amounts, Interest: interest}, nil
}

// EMI computes the equated periodic installment for a reducing-balance loan:
// P * r * (1+r)^n / ((1+r)^n - 1), rounded to the configured precision. The
// power term is computed in float64 and the result converted back to decimal
// for all monetary arithmetic.
func (d *Distributor) EMI(principal, annualRate decimal.Decimal, parts int) decimal.Decimal {
	monthlyRate := annualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))

	p := principal.InexactFloat64()
	r := monthlyRate.InexactFloat64()
	n := float64(parts)

	factor := math.Pow(1+r, n)
	emi := p * r * factor / (factor - 1)

	return d.rounder.Round(decimal.NewFromFloat(emi))
}

// reducingSchedule walks the declining balance period by period. Each
// period's interest is the rounded product of the remaining principal and
// the monthly rate; the final period's principal is forced to the entire
// remaining balance so the schedule lands on exactly zero.
func (d *Distributor) reducingSchedule(principal, annualRate decimal.Decimal, parts int) Distribution {
	r := d.rounder
	monthlyRate := annualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	emi := d.EMI(principal, annualRate, parts)

	principalAmounts := make([]decimal.Decimal, 0, parts)
	interestAmounts := make([]decimal.Decimal, 0, parts)
	remaining := r.Round(principal)

	for i := 0; i < parts; i++ {
		interest := r.Round(remaining.Mul(monthlyRate))
		principalPart := r.Round(emi.Sub(interest))

		if i == parts-1 {
			principalPart = remaining
		}

		principalAmounts = append(principalAmounts, principalPart)
		interestAmounts = append(interestAmounts, interest)
		remaining = r.Round(remaining.Sub(principalPart))
	}

	return Distribution{
		Principal: principalAmounts,
		Interest:  interestAmounts,
		EMI:       emi,
	}
}
