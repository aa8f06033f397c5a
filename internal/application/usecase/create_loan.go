package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/port"
	"github.com/loanworks/loan-engine/internal/domain/service"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// CreateLoanUseCase originates a loan: it generates the amortization
// schedule, records the disbursement, and persists everything atomically.
type CreateLoanUseCase struct {
	generator *service.ScheduleGenerator
	rounder   money.Rounder
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	generator *service.ScheduleGenerator,
	rounder money.Rounder,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		generator: generator,
		rounder:   rounder,
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute creates the loan described by req and returns it with the full
// generated schedule.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	interestType, err := valueobject.NewInterestType(req.InterestType)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %w", model.ErrInvalidArgument, err)
	}
	tenorUnit, err := valueobject.NewTenorUnit(req.TenorType)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %w", model.ErrInvalidArgument, err)
	}

	terms := model.LoanTerms{
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		InterestType:    interestType,
		Tenor:           req.Tenor,
		TenorUnit:       tenorUnit,
		StartDate:       req.StartDate,
	}

	installments, totalInterest, err := uc.generator.Generate(terms)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	loan, err := model.NewLoan(terms, installments, totalInterest, uc.rounder, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("new loan: %w", err)
	}

	disbursement := model.NewDisbursement(loan.ID(), loan.PrincipalAmount(), terms.StartDate)

	if err := uc.loanRepo.Create(ctx, loan, disbursement); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return ToLoanResponse(loan, true), nil
}
