package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/service"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

func newGenerator(t *testing.T) *service.ScheduleGenerator {
	t.Helper()
	return service.NewScheduleGenerator(service.NewDistributor(money.Default()))
}

func flatWeeklyTerms(t *testing.T) model.LoanTerms {
	t.Helper()
	return model.LoanTerms{
		PrincipalAmount: decimal.NewFromInt(5_000_000),
		InterestRate:    decimal.NewFromInt(10),
		InterestType:    valueobject.InterestTypeFlat,
		Tenor:           50,
		TenorUnit:       valueobject.TenorUnitWeek,
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestScheduleGenerator_Flat(t *testing.T) {
	g := newGenerator(t)

	installments, totalInterest, err := g.Generate(flatWeeklyTerms(t))
	require.NoError(t, err)
	require.Len(t, installments, 50)

	assert.True(t, totalInterest.Equal(decimal.NewFromInt(500_000)),
		"flat interest is principal * rate/100, got %s", totalInterest)

	principalSum := decimal.Zero
	interestSum := decimal.Zero
	for i, inst := range installments {
		assert.Equal(t, i+1, inst.Number)
		assert.True(t, inst.PrincipalAmount.Equal(decimal.NewFromInt(100_000)))
		assert.True(t, inst.InterestAmount.Equal(decimal.NewFromInt(10_000)))
		assert.True(t, inst.TotalOutstanding.Equal(decimal.NewFromInt(110_000)))
		assert.True(t, inst.PrincipalPaid.IsZero())
		assert.True(t, inst.InterestPaid.IsZero())
		assert.False(t, inst.IsCompleted)

		principalSum = principalSum.Add(inst.PrincipalAmount)
		interestSum = interestSum.Add(inst.InterestAmount)
	}

	assert.True(t, principalSum.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, interestSum.Equal(decimal.NewFromInt(500_000)))
}

func TestScheduleGenerator_WeeklyDates(t *testing.T) {
	g := newGenerator(t)

	installments, _, err := g.Generate(flatWeeklyTerms(t))
	require.NoError(t, err)

	first := installments[0]
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.FromDate)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), first.ToDate)

	// Periods are contiguous: each starts the day after the previous ends.
	for i := 1; i < len(installments); i++ {
		prev := installments[i-1]
		curr := installments[i]
		assert.Equal(t, prev.ToDate.AddDate(0, 0, 1), curr.FromDate,
			"installment %d should start the day after %d ends", curr.Number, prev.Number)
		assert.Equal(t, curr.FromDate.AddDate(0, 0, 7), curr.ToDate)
	}
}

func TestScheduleGenerator_MonthlyDates(t *testing.T) {
	g := newGenerator(t)

	terms := model.LoanTerms{
		PrincipalAmount: decimal.NewFromInt(1_200_000),
		InterestRate:    decimal.NewFromInt(12),
		InterestType:    valueobject.InterestTypeFlat,
		Tenor:           3,
		TenorUnit:       valueobject.TenorUnitMonth,
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	installments, _, err := g.Generate(terms)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), installments[0].ToDate)
	assert.Equal(t, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), installments[1].FromDate)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), installments[1].ToDate)
}

func TestScheduleGenerator_Reducing(t *testing.T) {
	g := newGenerator(t)

	terms := model.LoanTerms{
		PrincipalAmount: decimal.NewFromInt(5_000_000),
		InterestRate:    decimal.NewFromInt(10),
		InterestType:    valueobject.InterestTypeReducing,
		Tenor:           12,
		TenorUnit:       valueobject.TenorUnitMonth,
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	installments, totalInterest, err := g.Generate(terms)
	require.NoError(t, err)
	require.Len(t, installments, 12)

	emi := decimal.RequireFromString("439579.44")
	for _, inst := range installments[:11] {
		assert.True(t, inst.TotalOutstanding.Equal(emi),
			"installment %d bills %s, want EMI %s", inst.Number, inst.TotalOutstanding, emi)
	}

	principalSum := decimal.Zero
	interestSum := decimal.Zero
	for _, inst := range installments {
		principalSum = principalSum.Add(inst.PrincipalAmount)
		interestSum = interestSum.Add(inst.InterestAmount)
	}
	assert.True(t, principalSum.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, interestSum.Equal(totalInterest))
}

func TestScheduleGenerator_ReducingWithoutRate(t *testing.T) {
	g := newGenerator(t)

	terms := model.LoanTerms{
		PrincipalAmount: decimal.NewFromInt(1000),
		InterestRate:    decimal.Zero,
		InterestType:    valueobject.InterestTypeReducing,
		Tenor:           12,
		TenorUnit:       valueobject.TenorUnitMonth,
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, _, err := g.Generate(terms)
	assert.Error(t, err)
}
