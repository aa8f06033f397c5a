package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its schedule and balance summary.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute returns the loan, optionally with the full schedule attached.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID uuid.UUID, withSchedule bool) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return ToLoanResponse(loan, withSchedule), nil
}

// Outstanding returns only the loan-level balance summary.
func (uc *GetLoanUseCase) Outstanding(ctx context.Context, loanID uuid.UUID) (dto.OutstandingResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.OutstandingResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return dto.OutstandingResponse{
		PrincipalOutstanding: loan.PrincipalOutstanding(),
		InterestOutstanding:  loan.InterestOutstanding(),
		TotalOutstanding:     loan.TotalOutstanding(),
	}, nil
}

// ToLoanResponse maps a loan aggregate to its external representation.
func ToLoanResponse(loan model.Loan, withSchedule bool) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:                   loan.ID(),
		Status:               loan.Status().String(),
		PrincipalAmount:      loan.PrincipalAmount(),
		InterestAmount:       loan.InterestAmount(),
		InterestRate:         loan.InterestRate(),
		InterestType:         loan.InterestType().String(),
		Tenor:                loan.Tenor(),
		TenorType:            loan.TenorUnit().String(),
		StartDate:            loan.StartDate(),
		PrincipalPaid:        loan.PrincipalPaid(),
		InterestPaid:         loan.InterestPaid(),
		PrincipalOutstanding: loan.PrincipalOutstanding(),
		InterestOutstanding:  loan.InterestOutstanding(),
		TotalOutstanding:     loan.TotalOutstanding(),
		CreatedAt:            loan.CreatedAt(),
		UpdatedAt:            loan.UpdatedAt(),
	}

	if withSchedule {
		for _, inst := range loan.Installments() {
			resp.Schedule = append(resp.Schedule, dto.InstallmentResponse{
				InstallmentNumber:    inst.Number,
				FromDate:             inst.FromDate,
				ToDate:               inst.ToDate,
				PrincipalAmount:      inst.PrincipalAmount,
				InterestAmount:       inst.InterestAmount,
				PrincipalPaid:        inst.PrincipalPaid,
				InterestPaid:         inst.InterestPaid,
				PrincipalOutstanding: inst.PrincipalOutstanding,
				InterestOutstanding:  inst.InterestOutstanding,
				TotalOutstanding:     inst.TotalOutstanding,
				IsCompleted:          inst.IsCompleted,
			})
		}
	}

	return resp
}
