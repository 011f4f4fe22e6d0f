package summary

import (
	"errors"
	"sort"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

var ErrMaximumNotPositive = errors.New("the budget maximum must be larger than zero")

var hundred = decimal.NewFromInt(100)

// Progress is the spending progress of a budget.
type Progress struct {
	Spent      decimal.Decimal `json:"spent" example:"150"`      // Sum of expenses in the budget's category
	Maximum    decimal.Decimal `json:"maximum" example:"200"`    // Spending limit
	Remaining  decimal.Decimal `json:"remaining" example:"50"`   // Can be negative when overspent
	Percentage decimal.Decimal `json:"percentage" example:"75"` // Can exceed 100 when overspent
}

// BudgetProgress computes the remaining amount and the spent percentage.
// Neither value is clamped.
func BudgetProgress(spent, maximum decimal.Decimal) (Progress, error) {
	if !maximum.IsPositive() {
		return Progress{}, ErrMaximumNotPositive
	}

	return Progress{
		Spent:      spent,
		Maximum:    maximum,
		Remaining:  maximum.Sub(spent),
		Percentage: spent.Mul(hundred).Div(maximum),
	}, nil
}

// Spent is the sum of the absolute amounts of all expenses in category.
func Spent(transactions []models.Transaction, category models.Category) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transactions {
		if t.Category == category && t.Expense() {
			sum = sum.Add(t.Amount.Abs())
		}
	}
	return sum
}

// LatestSpending returns up to n expenses in category, most recent first.
func LatestSpending(transactions []models.Transaction, category models.Category, n int) []models.Transaction {
	latest := make([]models.Transaction, 0, n)
	for _, t := range transactions {
		if t.Category == category && t.Expense() {
			latest = append(latest, t)
		}
	}

	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].Date.After(latest[j].Date)
	})

	if len(latest) > n {
		latest = latest[:n]
	}
	return latest
}
