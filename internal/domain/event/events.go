package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanOriginated is raised when a loan is created and its schedule generated.
type LoanOriginated struct {
	BaseEvent
	Principal     decimal.Decimal `json:"principal"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	InterestType  string          `json:"interest_type"`
	Tenor         int             `json:"tenor"`
	TenorUnit     string          `json:"tenor_unit"`
	StartDate     time.Time       `json:"start_date"`
}

func NewLoanOriginated(
	loanID uuid.UUID,
	principal, totalInterest decimal.Decimal,
	interestType string, tenor int, tenorUnit string,
	startDate, now time.Time,
) LoanOriginated {
	return LoanOriginated{
		BaseEvent:     NewBaseEvent("lending.loan.originated", loanID, "Loan", now),
		Principal:     principal,
		TotalInterest: totalInterest,
		InterestType:  interestType,
		Tenor:         tenor,
		TenorUnit:     tenorUnit,
		StartDate:     startDate,
	}
}

// RepaymentReceived is raised when a repayment is applied to a loan.
type RepaymentReceived struct {
	BaseEvent
	TransactionID    uuid.UUID       `json:"transaction_id"`
	Amount           decimal.Decimal `json:"amount"`
	SchedulesPaid    int             `json:"schedules_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

func NewRepaymentReceived(
	loanID, transactionID uuid.UUID,
	amount decimal.Decimal, schedulesPaid int,
	totalOutstanding decimal.Decimal, now time.Time,
) RepaymentReceived {
	return RepaymentReceived{
		BaseEvent:        NewBaseEvent("lending.loan.repayment_received", loanID, "Loan", now),
		TransactionID:    transactionID,
		Amount:           amount,
		SchedulesPaid:    schedulesPaid,
		TotalOutstanding: totalOutstanding,
	}
}

// LoanCompleted is raised when a loan's total outstanding reaches zero.
type LoanCompleted struct {
	BaseEvent
}

func NewLoanCompleted(loanID uuid.UUID, now time.Time) LoanCompleted {
	return LoanCompleted{
		BaseEvent: NewBaseEvent("lending.loan.completed", loanID, "Loan", now),
	}
}
