package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan. A loan is ACTIVE from
// origination until its total outstanding reaches zero, at which point it
// becomes COMPLETED. Loans are never deleted.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive    = "ACTIVE"
	loanStatusCompleted = "COMPLETED"
)

var (
	LoanStatusActive    = LoanStatus{value: loanStatusActive}
	LoanStatusCompleted = LoanStatus{value: loanStatusCompleted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:    LoanStatusActive,
	loanStatusCompleted: LoanStatusCompleted,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// InterestType – immutable value object
// ---------------------------------------------------------------------------

// InterestType selects the interest model of a loan: FLAT computes interest
// once on the original principal and spreads it evenly; REDUCING recomputes
// interest each period on the remaining principal.
type InterestType struct {
	value string
}

const (
	interestTypeFlat     = "FLAT"
	interestTypeReducing = "REDUCING"
)

var (
	InterestTypeFlat     = InterestType{value: interestTypeFlat}
	InterestTypeReducing = InterestType{value: interestTypeReducing}
)

var validInterestTypes = map[string]InterestType{
	interestTypeFlat:     InterestTypeFlat,
	interestTypeReducing: InterestTypeReducing,
}

// NewInterestType creates an InterestType from a raw string.
func NewInterestType(s string) (InterestType, error) {
	v, ok := validInterestTypes[s]
	if !ok {
		return InterestType{}, fmt.Errorf("invalid interest type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (t InterestType) String() string { return t.value }

// IsZero returns true when not initialised.
func (t InterestType) IsZero() bool { return t.value == "" }

// Equal returns true when both types match.
func (t InterestType) Equal(other InterestType) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// TenorUnit – immutable value object
// ---------------------------------------------------------------------------

// TenorUnit is the length of one installment period: seven calendar days for
// WEEK, one calendar month for MONTH.
type TenorUnit struct {
	value string
}

const (
	tenorUnitWeek  = "WEEK"
	tenorUnitMonth = "MONTH"
)

var (
	TenorUnitWeek  = TenorUnit{value: tenorUnitWeek}
	TenorUnitMonth = TenorUnit{value: tenorUnitMonth}
)

var validTenorUnits = map[string]TenorUnit{
	tenorUnitWeek:  TenorUnitWeek,
	tenorUnitMonth: TenorUnitMonth,
}

// NewTenorUnit creates a TenorUnit from a raw string.
func NewTenorUnit(s string) (TenorUnit, error) {
	v, ok := validTenorUnits[s]
	if !ok {
		return TenorUnit{}, fmt.Errorf("invalid tenor unit: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (u TenorUnit) String() string { return u.value }

// IsZero returns true when not initialised.
func (u TenorUnit) IsZero() bool { return u.value == "" }

// Equal returns true when both units match.
func (u TenorUnit) Equal(other TenorUnit) bool { return u.value == other.value }
