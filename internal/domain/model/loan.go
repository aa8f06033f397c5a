package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/domain/event"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// LoanTerms are the validated origination inputs the engine trusts.
type LoanTerms struct {
	PrincipalAmount decimal.Decimal
	InterestRate    decimal.Decimal
	InterestType    valueobject.InterestType
	Tenor           int
	TenorUnit       valueobject.TenorUnit
	StartDate       time.Time
}

// Loan is an immutable aggregate. Mutations return a new copy. The loan-level
// paid/outstanding figures are a denormalized running ledger over the
// installments; ApplyRepayment keeps the two in lockstep and verifies the
// invariants before returning.
type Loan struct {
	id                   uuid.UUID
	status               valueobject.LoanStatus
	principalAmount      decimal.Decimal
	interestAmount       decimal.Decimal
	interestRate         decimal.Decimal
	interestType         valueobject.InterestType
	tenor                int
	tenorUnit            valueobject.TenorUnit
	startDate            time.Time
	principalPaid        decimal.Decimal
	interestPaid         decimal.Decimal
	principalOutstanding decimal.Decimal
	interestOutstanding  decimal.Decimal
	totalOutstanding     decimal.Decimal
	installments         []Installment
	version              int
	createdAt            time.Time
	updatedAt            time.Time
	domainEvents         []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates an ACTIVE loan from validated terms and its generated
// schedule. totalInterest must be the rounded sum of the schedule's interest
// column; the schedule itself comes from service.ScheduleGenerator.
func NewLoan(
	terms LoanTerms,
	installments []Installment,
	totalInterest decimal.Decimal,
	r money.Rounder,
	now time.Time,
) (Loan, error) {
	if terms.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, fmt.Errorf("%w: principal must be positive", ErrInvalidArgument)
	}
	if terms.Tenor <= 0 {
		return Loan{}, fmt.Errorf("%w: tenor must be positive", ErrInvalidArgument)
	}
	if terms.InterestType.IsZero() {
		return Loan{}, fmt.Errorf("%w: interest type is required", ErrInvalidArgument)
	}
	if terms.TenorUnit.IsZero() {
		return Loan{}, fmt.Errorf("%w: tenor unit is required", ErrInvalidArgument)
	}
	if len(installments) != terms.Tenor {
		return Loan{}, fmt.Errorf("%w: schedule has %d installments, want %d",
			ErrInvalidArgument, len(installments), terms.Tenor)
	}

	principal := r.Round(terms.PrincipalAmount)
	loan := Loan{
		id:                   uuid.New(),
		status:               valueobject.LoanStatusActive,
		principalAmount:      principal,
		interestAmount:       totalInterest,
		interestRate:         terms.InterestRate,
		interestType:         terms.InterestType,
		tenor:                terms.Tenor,
		tenorUnit:            terms.TenorUnit,
		startDate:            terms.StartDate,
		principalPaid:        decimal.Zero,
		interestPaid:         decimal.Zero,
		principalOutstanding: principal,
		interestOutstanding:  totalInterest,
		totalOutstanding:     r.Round(principal.Add(totalInterest)),
		installments:         copyInstallments(installments),
		version:              1,
		createdAt:            now,
		updatedAt:            now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanOriginated(
		loan.id, principal, totalInterest,
		terms.InterestType.String(), terms.Tenor, terms.TenorUnit.String(),
		terms.StartDate, now,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id uuid.UUID,
	status valueobject.LoanStatus,
	principalAmount, interestAmount, interestRate decimal.Decimal,
	interestType valueobject.InterestType,
	tenor int,
	tenorUnit valueobject.TenorUnit,
	startDate time.Time,
	principalPaid, interestPaid decimal.Decimal,
	principalOutstanding, interestOutstanding, totalOutstanding decimal.Decimal,
	installments []Installment,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                   id,
		status:               status,
		principalAmount:      principalAmount,
		interestAmount:       interestAmount,
		interestRate:         interestRate,
		interestType:         interestType,
		tenor:                tenor,
		tenorUnit:            tenorUnit,
		startDate:            startDate,
		principalPaid:        principalPaid,
		interestPaid:         interestPaid,
		principalOutstanding: principalOutstanding,
		interestOutstanding:  interestOutstanding,
		totalOutstanding:     totalOutstanding,
		installments:         installments,
		version:              version,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Repayment – the core state transition
// ---------------------------------------------------------------------------

// ApplyRepayment applies a repayment under the strict-match policy: the
// amount must equal, to the rounding unit, the summed total outstanding of
// every installment whose period ended on or before paymentDate. All due
// installments are then settled in full, oldest first.
//
// It returns the updated aggregate, the COMPLETED transaction with one
// detail row per settled installment, and a result summary. The caller must
// persist the loan, its touched installments, and the transaction as one
// atomic unit.
func (l Loan) ApplyRepayment(
	r money.Rounder,
	amount decimal.Decimal,
	paymentDate time.Time,
	now time.Time,
) (Loan, Transaction, RepaymentResult, error) {
	due := make([]int, 0, len(l.installments))
	for idx, inst := range l.installments {
		if !inst.IsCompleted && inst.DueOnOrBefore(paymentDate) {
			due = append(due, idx)
		}
	}
	if len(due) == 0 {
		return l, Transaction{}, RepaymentResult{}, ErrNoDueInstallments
	}

	totalDue := decimal.Zero
	for _, idx := range due {
		totalDue = totalDue.Add(l.installments[idx].TotalOutstanding)
	}
	totalDue = r.Round(totalDue)
	paid := r.Round(amount)

	if !r.Equal(paid, totalDue) {
		return l, Transaction{}, RepaymentResult{}, &AmountMismatchError{
			Expected: totalDue,
			Actual:   paid,
		}
	}

	txn := Transaction{
		ID:     uuid.New(),
		LoanID: l.id,
		Date:   paymentDate,
		Total:  paid,
		Type:   valueobject.TransactionTypeRepayment,
		Status: valueobject.TransactionStatusPending,
	}

	next := l
	next.installments = copyInstallments(l.installments)
	next.domainEvents = copyEvents(l.domainEvents)

	// Aggregate totals are advanced by the deltas applied in this call,
	// never by re-summing the whole schedule.
	principalDelta := decimal.Zero
	interestDelta := decimal.Zero

	for _, idx := range due {
		inst := &next.installments[idx]

		detail := TransactionDetail{
			ID:                uuid.New(),
			TransactionID:     txn.ID,
			InstallmentNumber: inst.Number,
			PrincipalPortion:  inst.PrincipalOutstanding,
			InterestPortion:   inst.InterestOutstanding,
		}
		txn.Details = append(txn.Details, detail)

		principalDelta = principalDelta.Add(inst.PrincipalOutstanding)
		interestDelta = interestDelta.Add(inst.InterestOutstanding)

		inst.PrincipalPaid = r.Round(inst.PrincipalPaid.Add(inst.PrincipalOutstanding))
		inst.InterestPaid = r.Round(inst.InterestPaid.Add(inst.InterestOutstanding))
		inst.PrincipalOutstanding = decimal.Zero
		inst.InterestOutstanding = decimal.Zero
		inst.TotalOutstanding = decimal.Zero
		inst.IsCompleted = true
	}

	principalDelta = r.Round(principalDelta)
	interestDelta = r.Round(interestDelta)

	next.principalPaid = r.Round(l.principalPaid.Add(principalDelta))
	next.interestPaid = r.Round(l.interestPaid.Add(interestDelta))
	next.principalOutstanding = r.Round(l.principalOutstanding.Sub(principalDelta))
	next.interestOutstanding = r.Round(l.interestOutstanding.Sub(interestDelta))
	next.totalOutstanding = r.Round(l.totalOutstanding.Sub(paid))
	next.updatedAt = now

	if next.totalOutstanding.IsZero() {
		next.status = valueobject.LoanStatusCompleted
	}

	if err := next.checkInvariants(r); err != nil {
		return l, Transaction{}, RepaymentResult{}, err
	}

	txn.Status = valueobject.TransactionStatusCompleted

	next.domainEvents = append(next.domainEvents, event.NewRepaymentReceived(
		l.id, txn.ID, paid, len(due), next.totalOutstanding, now,
	))
	if next.status.Equal(valueobject.LoanStatusCompleted) {
		next.domainEvents = append(next.domainEvents, event.NewLoanCompleted(l.id, now))
	}

	result := RepaymentResult{
		TransactionID:   txn.ID,
		AmountApplied:   paid,
		SchedulesPaid:   len(due),
		AmountRemaining: decimal.Zero,
	}

	return next, txn, result, nil
}

// checkInvariants verifies the aggregate ledger against itself before a
// mutated copy is released for persistence.
func (l Loan) checkInvariants(r money.Rounder) error {
	if !r.Equal(l.principalOutstanding.Add(l.interestOutstanding), l.totalOutstanding) {
		return fmt.Errorf("%w: outstanding split %s + %s != total %s",
			ErrConsistencyViolation,
			l.principalOutstanding, l.interestOutstanding, l.totalOutstanding)
	}
	if !r.Equal(l.principalPaid.Add(l.principalOutstanding), l.principalAmount) {
		return fmt.Errorf("%w: principal paid %s + outstanding %s != amount %s",
			ErrConsistencyViolation,
			l.principalPaid, l.principalOutstanding, l.principalAmount)
	}
	if !r.Equal(l.interestPaid.Add(l.interestOutstanding), l.interestAmount) {
		return fmt.Errorf("%w: interest paid %s + outstanding %s != amount %s",
			ErrConsistencyViolation,
			l.interestPaid, l.interestOutstanding, l.interestAmount)
	}
	completed := l.status.Equal(valueobject.LoanStatusCompleted)
	if completed != l.totalOutstanding.IsZero() {
		return fmt.Errorf("%w: status %s with total outstanding %s",
			ErrConsistencyViolation, l.status, l.totalOutstanding)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() uuid.UUID                           { return l.id }
func (l Loan) Status() valueobject.LoanStatus          { return l.status }
func (l Loan) PrincipalAmount() decimal.Decimal        { return l.principalAmount }
func (l Loan) InterestAmount() decimal.Decimal         { return l.interestAmount }
func (l Loan) InterestRate() decimal.Decimal           { return l.interestRate }
func (l Loan) InterestType() valueobject.InterestType  { return l.interestType }
func (l Loan) Tenor() int                              { return l.tenor }
func (l Loan) TenorUnit() valueobject.TenorUnit        { return l.tenorUnit }
func (l Loan) StartDate() time.Time                    { return l.startDate }
func (l Loan) PrincipalPaid() decimal.Decimal          { return l.principalPaid }
func (l Loan) InterestPaid() decimal.Decimal           { return l.interestPaid }
func (l Loan) PrincipalOutstanding() decimal.Decimal   { return l.principalOutstanding }
func (l Loan) InterestOutstanding() decimal.Decimal    { return l.interestOutstanding }
func (l Loan) TotalOutstanding() decimal.Decimal       { return l.totalOutstanding }
func (l Loan) Version() int                            { return l.version }
func (l Loan) CreatedAt() time.Time                    { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                    { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent       { return l.domainEvents }

// Installments returns a defensive copy of the schedule in installment order.
func (l Loan) Installments() []Installment {
	return copyInstallments(l.installments)
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyInstallments(in []Installment) []Installment {
	if in == nil {
		return nil
	}
	out := make([]Installment, len(in))
	copy(out, in)
	return out
}

func copyEvents(in []event.DomainEvent) []event.DomainEvent {
	if in == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(in))
	copy(out, in)
	return out
}
