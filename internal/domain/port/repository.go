package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/loanworks/loan-engine/internal/domain/event"
	"github.com/loanworks/loan-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loan aggregates. Each method is one
// atomic unit of work: either every row it touches commits, or none do.
type LoanRepository interface {
	// Create stores a new loan with its full schedule and the origination
	// disbursement transaction.
	Create(ctx context.Context, loan model.Loan, disbursement model.Transaction) error

	// FindByID loads a loan and its complete schedule, installments in
	// ascending number order, as one consistent snapshot. Returns
	// model.ErrLoanNotFound when the loan does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error)

	// SaveRepayment commits a repayment: the loan-level ledger update, the
	// settled installments named by the transaction's details, and the
	// transaction with those details. The write is guarded by the loan's
	// version; model.ErrConcurrentUpdate is returned when another repayment
	// committed first, with no partial effect.
	SaveRepayment(ctx context.Context, loan model.Loan, txn model.Transaction) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
