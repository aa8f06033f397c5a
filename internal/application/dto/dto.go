package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateLoanRequest carries the validated origination terms.
type CreateLoanRequest struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	InterestType    string          `json:"interest_type"`
	Tenor           int             `json:"tenor"`
	TenorType       string          `json:"tenor_type"`
	StartDate       time.Time       `json:"start_date"`
}

// MakeRepaymentRequest carries the data for one repayment.
type MakeRepaymentRequest struct {
	LoanID      uuid.UUID       `json:"loan_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// CheckDelinquencyRequest identifies a loan and the reference date for
// classification.
type CheckDelinquencyRequest struct {
	LoanID   uuid.UUID `json:"loan_id"`
	AsOfDate time.Time `json:"as_of_date"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse is the external representation of one schedule line.
type InstallmentResponse struct {
	InstallmentNumber    int             `json:"installment_number"`
	FromDate             time.Time       `json:"from_date"`
	ToDate               time.Time       `json:"to_date"`
	PrincipalAmount      decimal.Decimal `json:"principal_amount"`
	InterestAmount       decimal.Decimal `json:"interest_amount"`
	PrincipalPaid        decimal.Decimal `json:"principal_paid"`
	InterestPaid         decimal.Decimal `json:"interest_paid"`
	PrincipalOutstanding decimal.Decimal `json:"principal_outstanding"`
	InterestOutstanding  decimal.Decimal `json:"interest_outstanding"`
	TotalOutstanding     decimal.Decimal `json:"total_outstanding"`
	IsCompleted          bool            `json:"is_completed"`
}

// LoanResponse is the external representation of a loan with its schedule.
type LoanResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Status               string                `json:"status"`
	PrincipalAmount      decimal.Decimal       `json:"principal_amount"`
	InterestAmount       decimal.Decimal       `json:"interest_amount"`
	InterestRate         decimal.Decimal       `json:"interest_rate"`
	InterestType         string                `json:"interest_type"`
	Tenor                int                   `json:"tenor"`
	TenorType            string                `json:"tenor_type"`
	StartDate            time.Time             `json:"start_date"`
	PrincipalPaid        decimal.Decimal       `json:"principal_paid"`
	InterestPaid         decimal.Decimal       `json:"interest_paid"`
	PrincipalOutstanding decimal.Decimal       `json:"principal_outstanding"`
	InterestOutstanding  decimal.Decimal       `json:"interest_outstanding"`
	TotalOutstanding     decimal.Decimal       `json:"total_outstanding"`
	Schedule             []InstallmentResponse `json:"schedule,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// OutstandingResponse is the loan-level balance summary.
type OutstandingResponse struct {
	PrincipalOutstanding decimal.Decimal `json:"principal_outstanding"`
	InterestOutstanding  decimal.Decimal `json:"interest_outstanding"`
	TotalOutstanding     decimal.Decimal `json:"total_outstanding"`
}

// RepaymentResponse is the external representation of an applied repayment.
type RepaymentResponse struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	AmountApplied   decimal.Decimal `json:"amount_applied"`
	SchedulesPaid   int             `json:"schedules_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	LoanStatus      string          `json:"loan_status"`
}

// OverdueScheduleResponse is one past-due line in a delinquency report.
type OverdueScheduleResponse struct {
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	Amount            decimal.Decimal `json:"amount"`
}

// DelinquencyResponse is the external representation of a delinquency check.
type DelinquencyResponse struct {
	Status             string                    `json:"status"`
	ConsecutiveOverdue int                       `json:"consecutive_overdue"`
	OverdueAmount      decimal.Decimal           `json:"overdue_amount"`
	OverdueSchedules   []OverdueScheduleResponse `json:"overdue_schedules"`
}
