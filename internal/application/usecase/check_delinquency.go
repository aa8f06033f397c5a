package usecase

import (
	"context"
	"fmt"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/domain/port"
	"github.com/loanworks/loan-engine/internal/domain/service"
)

// CheckDelinquencyUseCase classifies a loan's collection status as of an
// explicit reference date. It reads stored state only; calling it twice with
// the same arguments yields identical results.
type CheckDelinquencyUseCase struct {
	classifier *service.DelinquencyClassifier
	loanRepo   port.LoanRepository
}

// NewCheckDelinquencyUseCase wires dependencies.
func NewCheckDelinquencyUseCase(
	classifier *service.DelinquencyClassifier,
	loanRepo port.LoanRepository,
) *CheckDelinquencyUseCase {
	return &CheckDelinquencyUseCase{
		classifier: classifier,
		loanRepo:   loanRepo,
	}
}

// Execute returns the delinquency report for the requested loan.
func (uc *CheckDelinquencyUseCase) Execute(ctx context.Context, req dto.CheckDelinquencyRequest) (dto.DelinquencyResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.DelinquencyResponse{}, fmt.Errorf("find loan: %w", err)
	}

	report := uc.classifier.Classify(loan.Installments(), req.AsOfDate)

	schedules := make([]dto.OverdueScheduleResponse, 0, len(report.OverdueSchedules))
	for _, s := range report.OverdueSchedules {
		schedules = append(schedules, dto.OverdueScheduleResponse{
			InstallmentNumber: s.Number,
			DueDate:           s.DueDate,
			Amount:            s.Amount,
		})
	}

	return dto.DelinquencyResponse{
		Status:             report.Status.String(),
		ConsecutiveOverdue: report.ConsecutiveOverdue,
		OverdueAmount:      report.OverdueAmount,
		OverdueSchedules:   schedules,
	}, nil
}
