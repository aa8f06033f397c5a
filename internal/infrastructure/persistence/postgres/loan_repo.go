package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// LoanRepo implements port.LoanRepository against PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Create persists a new loan, its full schedule, and the origination
// disbursement transaction in one database transaction.
func (r *LoanRepo) Create(ctx context.Context, loan model.Loan, disbursement model.Transaction) error {
	return WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			INSERT INTO loans (
				id, status, principal_amount, interest_amount, interest_rate,
				interest_type, tenor, tenor_type, approval_date,
				principal_paid, interest_paid,
				principal_outstanding, interest_outstanding, total_outstanding,
				version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		`
		if _, err := tx.Exec(ctx, loanQuery,
			loan.ID(), loan.Status().String(),
			loan.PrincipalAmount(), loan.InterestAmount(), loan.InterestRate(),
			loan.InterestType().String(), loan.Tenor(), loan.TenorUnit().String(), loan.StartDate(),
			loan.PrincipalPaid(), loan.InterestPaid(),
			loan.PrincipalOutstanding(), loan.InterestOutstanding(), loan.TotalOutstanding(),
			loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		); err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		scheduleQuery := `
			INSERT INTO loan_schedules (
				loan_id, installment_number, from_date, to_date,
				principal_amount, interest_amount,
				principal_paid, interest_paid,
				principal_outstanding, interest_outstanding, total_outstanding,
				is_completed
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`
		for _, inst := range loan.Installments() {
			if _, err := tx.Exec(ctx, scheduleQuery,
				loan.ID(), inst.Number, inst.FromDate, inst.ToDate,
				inst.PrincipalAmount, inst.InterestAmount,
				inst.PrincipalPaid, inst.InterestPaid,
				inst.PrincipalOutstanding, inst.InterestOutstanding, inst.TotalOutstanding,
				inst.IsCompleted,
			); err != nil {
				return fmt.Errorf("insert schedule %d: %w", inst.Number, err)
			}
		}

		if err := insertTransaction(ctx, tx, disbursement); err != nil {
			return fmt.Errorf("insert disbursement: %w", err)
		}

		return nil
	})
}

// FindByID loads a loan and its schedule as one consistent snapshot.
func (r *LoanRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	var loan model.Loan

	err := WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			SELECT id, status, principal_amount, interest_amount, interest_rate,
			       interest_type, tenor, tenor_type, approval_date,
			       principal_paid, interest_paid,
			       principal_outstanding, interest_outstanding, total_outstanding,
			       version, created_at, updated_at
			FROM loans
			WHERE id = $1
		`
		head, err := scanLoanRow(tx.QueryRow(ctx, loanQuery, id))
		if err != nil {
			return err
		}

		installments, err := loadSchedule(ctx, tx, id)
		if err != nil {
			return err
		}

		loan = model.ReconstructLoan(
			head.ID(), head.Status(),
			head.PrincipalAmount(), head.InterestAmount(), head.InterestRate(),
			head.InterestType(), head.Tenor(), head.TenorUnit(), head.StartDate(),
			head.PrincipalPaid(), head.InterestPaid(),
			head.PrincipalOutstanding(), head.InterestOutstanding(), head.TotalOutstanding(),
			installments, head.Version(), head.CreatedAt(), head.UpdatedAt(),
		)
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}

	return loan, nil
}

// SaveRepayment commits a repayment as one atomic unit: the loan-level
// ledger update guarded by the loan's version, the settled installments, and
// the transaction with its details. A lost version check means another
// repayment committed first; the unit rolls back with
// model.ErrConcurrentUpdate.
func (r *LoanRepo) SaveRepayment(ctx context.Context, loan model.Loan, txn model.Transaction) error {
	installments := loan.Installments()
	byNumber := make(map[int]model.Installment, len(installments))
	for _, inst := range installments {
		byNumber[inst.Number] = inst
	}

	return WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			UPDATE loans SET
				status                = $1,
				principal_paid        = $2,
				interest_paid         = $3,
				principal_outstanding = $4,
				interest_outstanding  = $5,
				total_outstanding     = $6,
				version               = loans.version + 1,
				updated_at            = $7
			WHERE id = $8 AND version = $9
		`
		tag, err := tx.Exec(ctx, loanQuery,
			loan.Status().String(),
			loan.PrincipalPaid(), loan.InterestPaid(),
			loan.PrincipalOutstanding(), loan.InterestOutstanding(), loan.TotalOutstanding(),
			loan.UpdatedAt(), loan.ID(), loan.Version(),
		)
		if err != nil {
			return fmt.Errorf("update loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrConcurrentUpdate
		}

		scheduleQuery := `
			UPDATE loan_schedules SET
				principal_paid        = $1,
				interest_paid         = $2,
				principal_outstanding = $3,
				interest_outstanding  = $4,
				total_outstanding     = $5,
				is_completed          = $6
			WHERE loan_id = $7 AND installment_number = $8
		`
		for _, detail := range txn.Details {
			inst, ok := byNumber[detail.InstallmentNumber]
			if !ok {
				return fmt.Errorf("%w: detail references unknown installment %d",
					model.ErrConsistencyViolation, detail.InstallmentNumber)
			}
			if _, err := tx.Exec(ctx, scheduleQuery,
				inst.PrincipalPaid, inst.InterestPaid,
				inst.PrincipalOutstanding, inst.InterestOutstanding, inst.TotalOutstanding,
				inst.IsCompleted, loan.ID(), inst.Number,
			); err != nil {
				return fmt.Errorf("update schedule %d: %w", inst.Number, err)
			}
		}

		if err := insertTransaction(ctx, tx, txn); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		return nil
	})
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func insertTransaction(ctx context.Context, q Querier, txn model.Transaction) error {
	txnQuery := `
		INSERT INTO loan_transactions (
			id, loan_id, transaction_date, total_amount, transaction_type, status
		) VALUES ($1,$2,$3,$4,$5,$6)
	`
	if _, err := q.Exec(ctx, txnQuery,
		txn.ID, txn.LoanID, txn.Date, txn.Total, txn.Type.String(), txn.Status.String(),
	); err != nil {
		return err
	}

	detailQuery := `
		INSERT INTO loan_transaction_details (
			id, transaction_id, loan_id, installment_number, principal_amount, interest_amount
		) VALUES ($1,$2,$3,$4,$5,$6)
	`
	for _, detail := range txn.Details {
		if _, err := q.Exec(ctx, detailQuery,
			detail.ID, detail.TransactionID, txn.LoanID,
			detail.InstallmentNumber, detail.PrincipalPortion, detail.InterestPortion,
		); err != nil {
			return fmt.Errorf("insert detail for installment %d: %w", detail.InstallmentNumber, err)
		}
	}

	return nil
}

func scanLoanRow(row pgx.Row) (model.Loan, error) {
	var (
		id                                             uuid.UUID
		statusStr, interestTypeStr, tenorUnitStr       string
		principalAmount, interestAmount, interestRate  decimal.Decimal
		tenor, version                                 int
		startDate, createdAt, updatedAt                time.Time
		principalPaid, interestPaid                    decimal.Decimal
		principalOut, interestOut, totalOut            decimal.Decimal
	)

	err := row.Scan(
		&id, &statusStr, &principalAmount, &interestAmount, &interestRate,
		&interestTypeStr, &tenor, &tenorUnitStr, &startDate,
		&principalPaid, &interestPaid,
		&principalOut, &interestOut, &totalOut,
		&version, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, model.ErrLoanNotFound
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}
	interestType, err := valueobject.NewInterestType(interestTypeStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse interest type: %w", err)
	}
	tenorUnit, err := valueobject.NewTenorUnit(tenorUnitStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse tenor unit: %w", err)
	}

	return model.ReconstructLoan(
		id, status, principalAmount, interestAmount, interestRate,
		interestType, tenor, tenorUnit, startDate,
		principalPaid, interestPaid,
		principalOut, interestOut, totalOut,
		nil, version, createdAt, updatedAt,
	), nil
}

func loadSchedule(ctx context.Context, q Querier, loanID uuid.UUID) ([]model.Installment, error) {
	query := `
		SELECT installment_number, from_date, to_date,
		       principal_amount, interest_amount,
		       principal_paid, interest_paid,
		       principal_outstanding, interest_outstanding, total_outstanding,
		       is_completed
		FROM loan_schedules
		WHERE loan_id = $1
		ORDER BY installment_number
	`
	rows, err := q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		var inst model.Installment
		if err := rows.Scan(
			&inst.Number, &inst.FromDate, &inst.ToDate,
			&inst.PrincipalAmount, &inst.InterestAmount,
			&inst.PrincipalPaid, &inst.InterestPaid,
			&inst.PrincipalOutstanding, &inst.InterestOutstanding, &inst.TotalOutstanding,
			&inst.IsCompleted,
		); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}
