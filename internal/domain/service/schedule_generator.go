package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// ScheduleGenerator builds the ordered installment schedule for a new loan.
// It is a pure function of the loan terms; the same terms always yield the
// same schedule.
type ScheduleGenerator struct {
	distributor *Distributor
}

// NewScheduleGenerator creates a generator backed by the given distributor.
func NewScheduleGenerator(d *Distributor) *ScheduleGenerator {
	return &ScheduleGenerator{distributor: d}
}

// Generate produces the full installment list for the given terms plus the
// rounded total interest billed over the loan's life.
//
// FLAT: total interest = round(principal * rate/100); principal and interest
// are each distributed FLAT-LAST and paired positionally. REDUCING: one
// reducing-balance distribution yields both columns. Periods are contiguous:
// each installment ends one tenor unit after it starts, and the next one
// starts the following calendar day.
func (g *ScheduleGenerator) Generate(terms model.LoanTerms) ([]model.Installment, decimal.Decimal, error) {
	r := g.distributor.Rounder()

	var dist Distribution
	switch {
	case terms.InterestType.Equal(valueobject.InterestTypeFlat):
		totalInterest := r.Round(terms.PrincipalAmount.Mul(terms.InterestRate.Div(decimal.NewFromInt(100))))

		principalDist, err := g.distributor.Distribute(terms.PrincipalAmount, terms.Tenor, StrategyFlatLast, DistributeOptions{})
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("distribute principal: %w", err)
		}
		interestDist, err := g.distributor.Distribute(totalInterest, terms.Tenor, StrategyFlatLast, DistributeOptions{})
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("distribute interest: %w", err)
		}

		// The interest total was distributed through the principal column of
		// its own call; pair it with the principal distribution positionally.
		dist = Distribution{
			Principal: principalDist.Principal,
			Interest:  interestDist.Principal,
		}

	case terms.InterestType.Equal(valueobject.InterestTypeReducing):
		var err error
		dist, err = g.distributor.Distribute(terms.PrincipalAmount, terms.Tenor, StrategyReducing, DistributeOptions{
			AnnualRate: terms.InterestRate,
		})
		if err != nil {
			return nil, decimal.Zero, err
		}

	default:
		return nil, decimal.Zero, fmt.Errorf("%w: unsupported interest type %q",
			model.ErrInvalidArgument, terms.InterestType)
	}

	installments := make([]model.Installment, 0, terms.Tenor)
	next := terms.StartDate

	for number := 1; number <= terms.Tenor; number++ {
		var due time.Time
		if terms.TenorUnit.Equal(valueobject.TenorUnitWeek) {
			due = next.AddDate(0, 0, 7)
		} else {
			due = next.AddDate(0, 1, 0)
		}

		principal := dist.Principal[number-1]
		interest := dist.Interest[number-1]
		total := r.Round(principal.Add(interest))

		installments = append(installments, model.Installment{
			Number:               number,
			FromDate:             next,
			ToDate:               due,
			PrincipalAmount:      principal,
			InterestAmount:       interest,
			PrincipalPaid:        decimal.Zero,
			InterestPaid:         decimal.Zero,
			PrincipalOutstanding: principal,
			InterestOutstanding:  interest,
			TotalOutstanding:     total,
			IsCompleted:          false,
		})

		// The next period starts the day after this one ends so periods
		// never overlap and never gap.
		next = due.AddDate(0, 0, 1)
	}

	totalInterest := r.Sum(dist.Interest...)

	return installments, totalInterest, nil
}
