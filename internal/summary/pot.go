package summary

import (
	"github.com/finance-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// clamp limits v to [lower, upper].
func clamp(v, lower, upper decimal.Decimal) decimal.Decimal {
	if v.LessThan(lower) {
		return lower
	}
	if v.GreaterThan(upper) {
		return upper
	}
	return v
}

// AddMoney adds requested to total without exceeding target. The amount
// actually added is returned as applied.
func AddMoney(total, target, requested decimal.Decimal) (newTotal, applied decimal.Decimal) {
	room := decimal.Max(target.Sub(total), decimal.Zero)
	applied = clamp(requested, decimal.Zero, room)
	return total.Add(applied), applied
}

// WithdrawMoney removes requested from total without going below zero.
func WithdrawMoney(total, requested decimal.Decimal) (newTotal, applied decimal.Decimal) {
	applied = clamp(requested, decimal.Zero, decimal.Max(total, decimal.Zero))
	return decimal.Max(total.Sub(applied), decimal.Zero), applied
}

// PotPercentage is the share of the target that has been saved, in percent.
// It is not clamped and zero for a zero target.
func PotPercentage(total, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return total.Mul(hundred).Div(target)
}

// TotalSaved is the sum of all pot totals.
func TotalSaved(pots []models.Pot) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range pots {
		sum = sum.Add(p.Total)
	}
	return sum
}
