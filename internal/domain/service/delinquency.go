package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/domain/money"
	"github.com/loanworks/loan-engine/internal/domain/valueobject"
)

// OverdueInstallment is one past-due schedule line in a delinquency report.
type OverdueInstallment struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// DelinquencyReport is the collection status of a loan as of a reference
// date. ConsecutiveOverdue is the length of the longest run of exactly
// sequential overdue installment numbers; OverdueAmount sums every overdue
// installment's outstanding, not just the run.
type DelinquencyReport struct {
	Status             valueobject.DelinquencyStatus
	ConsecutiveOverdue int
	OverdueAmount      decimal.Decimal
	OverdueSchedules   []OverdueInstallment
}

// DelinquencyClassifier inspects unpaid, past-due installments. Classify is
// a pure function of the installments and the reference date; it reads no
// clock and mutates nothing.
type DelinquencyClassifier struct {
	rounder money.Rounder
}

// NewDelinquencyClassifier creates a classifier using the given rounding rules.
func NewDelinquencyClassifier(r money.Rounder) *DelinquencyClassifier {
	return &DelinquencyClassifier{rounder: r}
}

// Classify returns the loan's collection status as of asOf. An installment
// is overdue when it is incomplete and its period ended strictly before
// asOf. Status is DELINQUENT when two or more overdue installments are
// exactly consecutive, OVERDUE when any are overdue without such a run, and
// CURRENT otherwise.
func (c *DelinquencyClassifier) Classify(installments []model.Installment, asOf time.Time) DelinquencyReport {
	var overdue []model.Installment
	for _, inst := range installments {
		if !inst.IsCompleted && inst.DueBefore(asOf) {
			overdue = append(overdue, inst)
		}
	}

	if len(overdue) == 0 {
		return DelinquencyReport{
			Status:             valueobject.DelinquencyStatusCurrent,
			ConsecutiveOverdue: 0,
			OverdueAmount:      decimal.Zero,
		}
	}

	consecutive := 1
	maxConsecutive := 1
	totalOverdue := overdue[0].TotalOutstanding

	for i := 1; i < len(overdue); i++ {
		if overdue[i].Number == overdue[i-1].Number+1 {
			consecutive++
			if consecutive > maxConsecutive {
				maxConsecutive = consecutive
			}
		} else {
			consecutive = 1
		}
		totalOverdue = totalOverdue.Add(overdue[i].TotalOutstanding)
	}

	status := valueobject.DelinquencyStatusOverdue
	if maxConsecutive >= 2 {
		status = valueobject.DelinquencyStatusDelinquent
	}

	schedules := make([]OverdueInstallment, 0, len(overdue))
	for _, inst := range overdue {
		schedules = append(schedules, OverdueInstallment{
			Number:  inst.Number,
			DueDate: inst.ToDate,
			Amount:  inst.TotalOutstanding,
		})
	}

	return DelinquencyReport{
		Status:             status,
		ConsecutiveOverdue: maxConsecutive,
		OverdueAmount:      c.rounder.Round(totalOverdue),
		OverdueSchedules:   schedules,
	}
}
