package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/loanworks/loan-engine/internal/domain/money"
)

func TestRounder_Round(t *testing.T) {
	r := money.Default()

	assert.Equal(t, "10.13", r.Round(decimal.RequireFromString("10.125")).String(),
		"half away from zero")
	assert.Equal(t, "-10.13", r.Round(decimal.RequireFromString("-10.125")).String())
	assert.Equal(t, "10.12", r.Round(decimal.RequireFromString("10.124")).String())
	assert.Equal(t, "100000", r.Round(decimal.NewFromInt(100_000)).String())
}

func TestRounder_Unit(t *testing.T) {
	assert.Equal(t, "0.01", money.Default().Unit().String())
	assert.Equal(t, "0.0001", money.New(4).Unit().String())
	assert.Equal(t, "1", money.New(0).Unit().String())
}

func TestRounder_Equal(t *testing.T) {
	r := money.Default()

	a := decimal.RequireFromString("100.00")

	assert.True(t, r.Equal(a, decimal.RequireFromString("100.00")))
	assert.True(t, r.Equal(a, decimal.RequireFromString("100.005")),
		"difference below one unit is equal")
	assert.False(t, r.Equal(a, decimal.RequireFromString("100.01")),
		"difference of exactly one unit is not equal")
	assert.False(t, r.Equal(a, decimal.RequireFromString("99.99")))
}

func TestRounder_Sum(t *testing.T) {
	r := money.Default()

	total := r.Sum(
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("0.2"),
		decimal.RequireFromString("0.3"),
	)
	assert.Equal(t, "0.6", total.String())

	assert.True(t, r.Sum().IsZero(), "empty sum is zero")
}

func TestRounder_ConfigurablePrecision(t *testing.T) {
	r := money.New(0)

	assert.Equal(t, "33333", r.Round(decimal.RequireFromString("33333.33")).String())
	assert.True(t, r.Equal(decimal.NewFromInt(100), decimal.RequireFromString("100.4")),
		"sub-unit differences vanish at zero places")
}
