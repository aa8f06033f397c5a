package usecase_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/loanworks/loan-engine/internal/domain/event"
	"github.com/loanworks/loan-engine/internal/domain/model"
)

type mockLoanRepository struct {
	createFunc        func(ctx context.Context, loan model.Loan, disbursement model.Transaction) error
	findByIDFunc      func(ctx context.Context, id uuid.UUID) (model.Loan, error)
	saveRepaymentFunc func(ctx context.Context, loan model.Loan, txn model.Transaction) error

	createdLoans      []model.Loan
	disbursements     []model.Transaction
	savedLoans        []model.Loan
	savedTransactions []model.Transaction
}

func (m *mockLoanRepository) Create(ctx context.Context, loan model.Loan, disbursement model.Transaction) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, loan, disbursement)
	}
	m.createdLoans = append(m.createdLoans, loan)
	m.disbursements = append(m.disbursements, disbursement)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, model.ErrLoanNotFound
}

func (m *mockLoanRepository) SaveRepayment(ctx context.Context, loan model.Loan, txn model.Transaction) error {
	if m.saveRepaymentFunc != nil {
		return m.saveRepaymentFunc(ctx, loan, txn)
	}
	m.savedLoans = append(m.savedLoans, loan)
	m.savedTransactions = append(m.savedTransactions, txn)
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}
