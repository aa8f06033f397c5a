package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// TransactionType – immutable value object
// ---------------------------------------------------------------------------

// TransactionType distinguishes money flowing out at origination
// (DISBURSEMENT) from money flowing in over the loan's life (REPAYMENT).
type TransactionType struct {
	value string
}

const (
	transactionTypeRepayment    = "REPAYMENT"
	transactionTypeDisbursement = "DISBURSEMENT"
)

var (
	TransactionTypeRepayment    = TransactionType{value: transactionTypeRepayment}
	TransactionTypeDisbursement = TransactionType{value: transactionTypeDisbursement}
)

var validTransactionTypes = map[string]TransactionType{
	transactionTypeRepayment:    TransactionTypeRepayment,
	transactionTypeDisbursement: TransactionTypeDisbursement,
}

// NewTransactionType creates a TransactionType from a raw string.
func NewTransactionType(s string) (TransactionType, error) {
	v, ok := validTransactionTypes[s]
	if !ok {
		return TransactionType{}, fmt.Errorf("invalid transaction type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (t TransactionType) String() string { return t.value }

// IsZero returns true when not initialised.
func (t TransactionType) IsZero() bool { return t.value == "" }

// Equal returns true when both types match.
func (t TransactionType) Equal(other TransactionType) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// TransactionStatus – immutable value object
// ---------------------------------------------------------------------------

// TransactionStatus tracks a transaction through its unit of work. A
// transaction is COMPLETED only once every installment and loan update in
// the same unit has succeeded; a failed unit leaves it FAILED.
type TransactionStatus struct {
	value string
}

const (
	transactionStatusPending   = "PENDING"
	transactionStatusCompleted = "COMPLETED"
	transactionStatusFailed    = "FAILED"
)

var (
	TransactionStatusPending   = TransactionStatus{value: transactionStatusPending}
	TransactionStatusCompleted = TransactionStatus{value: transactionStatusCompleted}
	TransactionStatusFailed    = TransactionStatus{value: transactionStatusFailed}
)

var validTransactionStatuses = map[string]TransactionStatus{
	transactionStatusPending:   TransactionStatusPending,
	transactionStatusCompleted: TransactionStatusCompleted,
	transactionStatusFailed:    TransactionStatusFailed,
}

// NewTransactionStatus creates a TransactionStatus from a raw string.
func NewTransactionStatus(s string) (TransactionStatus, error) {
	v, ok := validTransactionStatuses[s]
	if !ok {
		return TransactionStatus{}, fmt.Errorf("invalid transaction status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s TransactionStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s TransactionStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s TransactionStatus) Equal(other TransactionStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// DelinquencyStatus – immutable value object
// ---------------------------------------------------------------------------

// DelinquencyStatus is the collection status of a loan as of a reference
// date: CURRENT (nothing past due), OVERDUE (past-due installments but no
// run of two consecutive ones), or DELINQUENT (two or more consecutive
// past-due installments).
type DelinquencyStatus struct {
	value string
}

const (
	delinquencyStatusCurrent    = "CURRENT"
	delinquencyStatusOverdue    = "OVERDUE"
	delinquencyStatusDelinquent = "DELINQUENT"
)

var (
	DelinquencyStatusCurrent    = DelinquencyStatus{value: delinquencyStatusCurrent}
	DelinquencyStatusOverdue    = DelinquencyStatus{value: delinquencyStatusOverdue}
	DelinquencyStatusDelinquent = DelinquencyStatus{value: delinquencyStatusDelinquent}
)

var validDelinquencyStatuses = map[string]DelinquencyStatus{
	delinquencyStatusCurrent:    DelinquencyStatusCurrent,
	delinquencyStatusOverdue:    DelinquencyStatusOverdue,
	delinquencyStatusDelinquent: DelinquencyStatusDelinquent,
}

// NewDelinquencyStatus creates a DelinquencyStatus from a raw string.
func NewDelinquencyStatus(s string) (DelinquencyStatus, error) {
	v, ok := validDelinquencyStatuses[s]
	if !ok {
		return DelinquencyStatus{}, fmt.Errorf("invalid delinquency status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s DelinquencyStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s DelinquencyStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s DelinquencyStatus) Equal(other DelinquencyStatus) bool { return s.value == other.value }
