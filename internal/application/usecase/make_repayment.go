package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/port"
)

// MakeRepaymentUseCase applies a repayment to a loan under the strict-match
// policy. The read of due installments, the allocation, and the write of
// loan/installment/transaction rows form one atomic unit per loan; a
// concurrent repayment against the same loan loses the version check in the
// repository and rolls back whole.
type MakeRepaymentUseCase struct {
	rounder   money.Rounder
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewMakeRepaymentUseCase wires dependencies.
func NewMakeRepaymentUseCase(
	rounder money.Rounder,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *MakeRepaymentUseCase {
	return &MakeRepaymentUseCase{
		rounder:   rounder,
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute processes a repayment against a loan.
func (uc *MakeRepaymentUseCase) Execute(ctx context.Context, req dto.MakeRepaymentRequest) (dto.RepaymentResponse, error) {
	now := time.Now().UTC()

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, txn, result, err := loan.ApplyRepayment(uc.rounder, req.Amount, req.PaymentDate, now)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("apply repayment: %w", err)
	}

	if err := uc.loanRepo.SaveRepayment(ctx, loan, txn); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("save repayment: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.RepaymentResponse{
		TransactionID:   result.TransactionID,
		AmountApplied:   result.AmountApplied,
		SchedulesPaid:   result.SchedulesPaid,
		AmountRemaining: result.AmountRemaining,
		LoanStatus:      loan.Status().String(),
	}, nil
}
