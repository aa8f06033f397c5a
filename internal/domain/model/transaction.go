package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// Transaction records one repayment or disbursement event against a loan.
// A COMPLETED transaction is immutable.
type Transaction struct {
	ID      uuid.UUID
	LoanID  uuid.UUID
	Date    time.Time
	Total   decimal.Decimal
	Type    valueobject.TransactionType
	Status  valueobject.TransactionStatus
	Details []TransactionDetail
}

// TransactionDetail is the per-installment breakdown of a repayment: the
// principal and interest portions applied to one installment. At most one
// detail exists per (transaction, installment) pair.
type TransactionDetail struct {
	ID                uuid.UUID
	TransactionID     uuid.UUID
	InstallmentNumber int
	PrincipalPortion  decimal.Decimal
	InterestPortion   decimal.Decimal
}

// NewDisbursement creates the COMPLETED disbursement transaction recorded at
// loan origination.
func NewDisbursement(loanID uuid.UUID, amount decimal.Decimal, date time.Time) Transaction {
	return Transaction{
		ID:     uuid.New(),
		LoanID: loanID,
		Date:   date,
		Total:  amount,
		Type:   valueobject.TransactionTypeDisbursement,
		Status: valueobject.TransactionStatusCompleted,
	}
}

// RepaymentResult summarises a successfully applied repayment.
type RepaymentResult struct {
	TransactionID   uuid.UUID
	AmountApplied   decimal.Decimal
	SchedulesPaid   int
	AmountRemaining decimal.Decimal
}
