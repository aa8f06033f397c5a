package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

func TestNewLoanStatus(t *testing.T) {
	t.Run("accepts ACTIVE", func(t *testing.T) {
		s, err := valueobject.NewLoanStatus("ACTIVE")
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", s.String())
		assert.True(t, s.Equal(valueobject.LoanStatusActive))
	})

	t.Run("accepts COMPLETED", func(t *testing.T) {
		s, err := valueobject.NewLoanStatus("COMPLETED")
		require.NoError(t, err)
		assert.True(t, s.Equal(valueobject.LoanStatusCompleted))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := valueobject.NewLoanStatus("CANCELLED")
		assert.Error(t, err)
	})

	t.Run("rejects lowercase", func(t *testing.T) {
		_, err := valueobject.NewLoanStatus("active")
		assert.Error(t, err)
	})

	t.Run("zero value is zero", func(t *testing.T) {
		var s valueobject.LoanStatus
		assert.True(t, s.IsZero())
		assert.False(t, valueobject.LoanStatusActive.IsZero())
	})
}

func TestNewInterestType(t *testing.T) {
	t.Run("accepts FLAT", func(t *testing.T) {
		it, err := valueobject.NewInterestType("FLAT")
		require.NoError(t, err)
		assert.True(t, it.Equal(valueobject.InterestTypeFlat))
	})

	t.Run("accepts REDUCING", func(t *testing.T) {
		it, err := valueobject.NewInterestType("REDUCING")
		require.NoError(t, err)
		assert.True(t, it.Equal(valueobject.InterestTypeReducing))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := valueobject.NewInterestType("COMPOUND")
		assert.Error(t, err)
	})
}

func TestNewTenorUnit(t *testing.T) {
	t.Run("accepts WEEK", func(t *testing.T) {
		u, err := valueobject.NewTenorUnit("WEEK")
		require.NoError(t, err)
		assert.True(t, u.Equal(valueobject.TenorUnitWeek))
	})

	t.Run("accepts MONTH", func(t *testing.T) {
		u, err := valueobject.NewTenorUnit("MONTH")
		require.NoError(t, err)
		assert.True(t, u.Equal(valueobject.TenorUnitMonth))
	})

	t.Run("rejects DAY", func(t *testing.T) {
		_, err := valueobject.NewTenorUnit("DAY")
		assert.Error(t, err)
	})
}

func TestNewDelinquencyStatus(t *testing.T) {
	for _, raw := range []string{"CURRENT", "OVERDUE", "DELINQUENT"} {
		s, err := valueobject.NewDelinquencyStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}

	_, err := valueobject.NewDelinquencyStatus("DEFAULTED")
	assert.Error(t, err)
}
