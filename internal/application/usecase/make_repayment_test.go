package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/application/usecase"
	"github.com/loanworks/loan-engine/internal/domain/event"
	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/service"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// activeWeeklyLoan builds a 50-week flat loan starting 2025-01-01: each
// installment bills 110,000 and the first is due 2025-01-08.
func activeWeeklyLoan(t *testing.T) model.Loan {
	t.Helper()

	r := money.Default()
	generator := service.NewScheduleGenerator(service.NewDistributor(r))
	terms := model.LoanTerms{
		PrincipalAmount: decimal.NewFromInt(5_000_000),
		InterestRate:    decimal.NewFromInt(10),
		InterestType:    valueobject.InterestTypeFlat,
		Tenor:           50,
		TenorUnit:       valueobject.TenorUnitWeek,
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	installments, totalInterest, err := generator.Generate(terms)
	require.NoError(t, err)

	loan, err := model.NewLoan(terms, installments, totalInterest, r, terms.StartDate)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestMakeRepayment_Execute(t *testing.T) {
	t.Run("applies an exact repayment", func(t *testing.T) {
		loan := activeWeeklyLoan(t)
		repo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewMakeRepaymentUseCase(money.Default(), repo, publisher)

		resp, err := uc.Execute(context.Background(), dto.MakeRepaymentRequest{
			LoanID:      loan.ID(),
			Amount:      decimal.NewFromInt(110_000),
			PaymentDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.SchedulesPaid)
		assert.True(t, resp.AmountApplied.Equal(decimal.NewFromInt(110_000)))
		assert.True(t, resp.AmountRemaining.IsZero())
		assert.Equal(t, "ACTIVE", resp.LoanStatus)
		assert.NotEqual(t, uuid.Nil, resp.TransactionID)

		require.Len(t, repo.savedLoans, 1)
		require.Len(t, repo.savedTransactions, 1)
		assert.Len(t, repo.savedTransactions[0].Details, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("propagates strict-match mismatch", func(t *testing.T) {
		loan := activeWeeklyLoan(t)
		repo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
				return loan, nil
			},
		}
		uc := usecase.NewMakeRepaymentUseCase(money.Default(), repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.MakeRepaymentRequest{
			LoanID:      loan.ID(),
			Amount:      decimal.NewFromInt(100_000),
			PaymentDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})

		var mismatch *model.AmountMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Empty(t, repo.savedLoans, "nothing persisted on mismatch")
	})

	t.Run("propagates no due installments", func(t *testing.T) {
		loan := activeWeeklyLoan(t)
		repo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
				return loan, nil
			},
		}
		uc := usecase.NewMakeRepaymentUseCase(money.Default(), repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.MakeRepaymentRequest{
			LoanID:      loan.ID(),
			Amount:      decimal.NewFromInt(110_000),
			PaymentDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		})

		assert.True(t, errors.Is(err, model.ErrNoDueInstallments))
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		uc := usecase.NewMakeRepaymentUseCase(money.Default(), &mockLoanRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.MakeRepaymentRequest{
			LoanID:      uuid.New(),
			Amount:      decimal.NewFromInt(110_000),
			PaymentDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})

		assert.True(t, errors.Is(err, model.ErrLoanNotFound))
	})

	t.Run("propagates concurrent update conflicts", func(t *testing.T) {
		loan := activeWeeklyLoan(t)
		repo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
				return loan, nil
			},
			saveRepaymentFunc: func(ctx context.Context, loan model.Loan, txn model.Transaction) error {
				return model.ErrConcurrentUpdate
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewMakeRepaymentUseCase(money.Default(), repo, publisher)

		_, err := uc.Execute(context.Background(), dto.MakeRepaymentRequest{
			LoanID:      loan.ID(),
			Amount:      decimal.NewFromInt(110_000),
			PaymentDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})

		assert.True(t, errors.Is(err, model.ErrConcurrentUpdate))
		assert.Empty(t, publisher.publishedEvents, "nothing published on a lost version check")
	})

	t.Run("fails when publish fails", func(t *testing.T) {
		loan := activeWeeklyLoan(t)
		repo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, events ...event.DomainEvent) error {
				return errors.New("broker unavailable")
			},
		}
		uc := usecase.NewMakeRepaymentUseCase(money.Default(), repo, publisher)

		_, err := uc.Execute(context.Background(), dto.MakeRepaymentRequest{
			LoanID:      loan.ID(),
			Amount:      decimal.NewFromInt(110_000),
			PaymentDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}
