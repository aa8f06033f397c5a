package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one schedule line of a loan: the billed principal and
// interest for a single period plus the running paid/outstanding balances.
// The billed amounts are immutable after origination; only the paid and
// outstanding figures change, and only through Loan.ApplyRepayment.
//
// For a given loan, installment numbers are 1-based and strictly increasing
// with no gaps, and each period starts the day after the previous one ends.
type Installment struct {
	Number               int
	FromDate             time.Time
	ToDate               time.Time
	PrincipalAmount      decimal.Decimal
	InterestAmount       decimal.Decimal
	PrincipalPaid        decimal.Decimal
	InterestPaid         decimal.Decimal
	PrincipalOutstanding decimal.Decimal
	InterestOutstanding  decimal.Decimal
	TotalOutstanding     decimal.Decimal
	IsCompleted          bool
}

// DueOnOrBefore reports whether the installment's period has ended on or
// before the given date.
func (i Installment) DueOnOrBefore(date time.Time) bool {
	return !i.ToDate.After(date)
}

// DueBefore reports whether the installment's period ended strictly before
// the given date.
func (i Installment) DueBefore(date time.Time) bool {
	return i.ToDate.Before(date)
}
