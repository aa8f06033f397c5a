package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/application/usecase"
	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/service"
)

func newCreateLoanUseCase(repo *mockLoanRepository, publisher *mockEventPublisher) *usecase.CreateLoanUseCase {
	r := money.Default()
	generator := service.NewScheduleGenerator(service.NewDistributor(r))
	return usecase.NewCreateLoanUseCase(generator, r, repo, publisher)
}

func flatLoanRequest() dto.CreateLoanRequest {
	return dto.CreateLoanRequest{
		PrincipalAmount: decimal.NewFromInt(5_000_000),
		InterestRate:    decimal.NewFromInt(10),
		InterestType:    "FLAT",
		Tenor:           50,
		TenorType:       "WEEK",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateLoan_Execute(t *testing.T) {
	t.Run("creates a flat weekly loan", func(t *testing.T) {
		repo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}
		uc := newCreateLoanUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), flatLoanRequest())
		require.NoError(t, err)

		assert.Equal(t, "ACTIVE", resp.Status)
		assert.True(t, resp.PrincipalAmount.Equal(decimal.NewFromInt(5_000_000)))
		assert.True(t, resp.InterestAmount.Equal(decimal.NewFromInt(500_000)))
		assert.True(t, resp.TotalOutstanding.Equal(decimal.NewFromInt(5_500_000)))
		assert.Len(t, resp.Schedule, 50)

		require.Len(t, repo.createdLoans, 1)
		require.Len(t, repo.disbursements, 1)
		disbursement := repo.disbursements[0]
		assert.True(t, disbursement.Type.String() == "DISBURSEMENT")
		assert.True(t, disbursement.Total.Equal(decimal.NewFromInt(5_000_000)))

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "lending.loan.originated", publisher.publishedEvents[0].EventType())
	})

	t.Run("rejects unknown interest type", func(t *testing.T) {
		repo := &mockLoanRepository{}
		uc := newCreateLoanUseCase(repo, &mockEventPublisher{})

		req := flatLoanRequest()
		req.InterestType = "COMPOUND"
		_, err := uc.Execute(context.Background(), req)

		assert.True(t, errors.Is(err, model.ErrInvalidArgument))
		assert.Empty(t, repo.createdLoans)
	})

	t.Run("rejects unknown tenor type", func(t *testing.T) {
		uc := newCreateLoanUseCase(&mockLoanRepository{}, &mockEventPublisher{})

		req := flatLoanRequest()
		req.TenorType = "DAY"
		_, err := uc.Execute(context.Background(), req)

		assert.True(t, errors.Is(err, model.ErrInvalidArgument))
	})

	t.Run("fails when repository write fails", func(t *testing.T) {
		repo := &mockLoanRepository{
			createFunc: func(ctx context.Context, loan model.Loan, disbursement model.Transaction) error {
				return errors.New("connection refused")
			},
		}
		publisher := &mockEventPublisher{}
		uc := newCreateLoanUseCase(repo, publisher)

		_, err := uc.Execute(context.Background(), flatLoanRequest())

		require.Error(t, err)
		assert.Empty(t, publisher.publishedEvents, "nothing published when the write fails")
	})
}
