package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/application/usecase"
	"github.com/loanworks/loan-engine/internal/domain/model"
)

func TestGetLoan_Execute(t *testing.T) {
	loan := activeWeeklyLoan(t)
	repo := &mockLoanRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
			return loan, nil
		},
	}
	uc := usecase.NewGetLoanUseCase(repo)

	t.Run("without schedule", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), loan.ID(), false)
		require.NoError(t, err)

		assert.Equal(t, loan.ID(), resp.ID)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Equal(t, 50, resp.Tenor)
		assert.Equal(t, "WEEK", resp.TenorType)
		assert.Empty(t, resp.Schedule)
	})

	t.Run("with schedule", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), loan.ID(), true)
		require.NoError(t, err)

		require.Len(t, resp.Schedule, 50)
		assert.Equal(t, 1, resp.Schedule[0].InstallmentNumber)
		assert.True(t, resp.Schedule[0].TotalOutstanding.Equal(decimal.NewFromInt(110_000)))
	})

	t.Run("not found", func(t *testing.T) {
		uc := usecase.NewGetLoanUseCase(&mockLoanRepository{})
		_, err := uc.Execute(context.Background(), uuid.New(), false)
		assert.True(t, errors.Is(err, model.ErrLoanNotFound))
	})
}

func TestGetLoan_Outstanding(t *testing.T) {
	loan := activeWeeklyLoan(t)
	repo := &mockLoanRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
			return loan, nil
		},
	}
	uc := usecase.NewGetLoanUseCase(repo)

	resp, err := uc.Outstanding(context.Background(), loan.ID())
	require.NoError(t, err)

	assert.True(t, resp.PrincipalOutstanding.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, resp.InterestOutstanding.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, resp.TotalOutstanding.Equal(decimal.NewFromInt(5_500_000)))
}
