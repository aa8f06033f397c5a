package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by the loan accounting engine. All of them abort
// the current unit of work with no partial writes; the surrounding service
// decides whether and how to retry.
var (
	// ErrInvalidArgument marks malformed or missing parameters for schedule
	// or distribution math that the caller should have prevented.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLoanNotFound is returned when the referenced loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrNoDueInstallments is returned when a repayment is attempted with
	// nothing currently payable.
	ErrNoDueInstallments = errors.New("no due installments found")

	// ErrConsistencyViolation is the defensive failure raised when the loan
	// aggregate invariants do not hold after a mutation.
	ErrConsistencyViolation = errors.New("loan aggregate consistency violation")

	// ErrConcurrentUpdate is returned when another repayment committed
	// against the same loan between this unit's read and write.
	ErrConcurrentUpdate = errors.New("concurrent loan update")
)

// AmountMismatchError is returned when a repayment does not equal, to the
// rounding unit, the exact total outstanding across all currently due
// installments.
type AmountMismatchError struct {
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount %s must exactly match total due amount %s",
		e.Actual.StringFixed(2), e.Expected.StringFixed(2))
}

// Is lets callers match any AmountMismatchError with errors.Is.
func (e *AmountMismatchError) Is(target error) bool {
	_, ok := target.(*AmountMismatchError)
	return ok
}
