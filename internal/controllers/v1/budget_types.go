package v1

import (
	"fmt"
	"net/url"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/summary"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// latestSpendingCount is the number of expenses listed with each budget.
const latestSpendingCount = 3

type BudgetEditable struct {
	Category models.Category `json:"category" binding:"required" example:"Entertainment"` // Category the budget limits spending for. Every category can have one budget.
	Maximum  decimal.Decimal `json:"maximum" example:"50"`                                 // Spending limit, must be larger than zero
	Color    string          `json:"color" example:"#277C78" default:""`                   // Theme color as hex code
}

func (editable BudgetEditable) model(owner uuid.UUID) (models.Budget, error) {
	category, err := models.ParseCategory(string(editable.Category))
	if err != nil {
		return models.Budget{}, err
	}

	return models.Budget{
		OwnerID:  owner,
		Category: category,
		Maximum:  editable.Maximum,
		Color:    editable.Color,
	}, nil
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`              // The budget itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Entertainment"` // Transactions in the category of the budget
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Spent          decimal.Decimal `json:"spent" example:"15"`       // Sum of all expenses in the category
	Remaining      decimal.Decimal `json:"remaining" example:"35"`   // Maximum minus spent. Negative when overspent.
	Percentage     decimal.Decimal `json:"percentage" example:"30"`  // Spent in percent of the maximum. Exceeds 100 when overspent.
	LatestSpending []Transaction   `json:"latestSpending"`           // The most recent expenses in the category
	Links          BudgetLinks     `json:"links"`
}

// newBudget returns the API v1 representation of the resource with
// its progress computed from transactions.
func newBudget(c *gin.Context, model models.Budget, transactions []models.Transaction) (Budget, error) {
	progress, err := summary.BudgetProgress(summary.Spent(transactions, model.Category), model.Maximum)
	if err != nil {
		return Budget{}, err
	}

	latest := make([]Transaction, 0, latestSpendingCount)
	for _, t := range summary.LatestSpending(transactions, model.Category, latestSpendingCount) {
		latest = append(latest, newTransaction(c, t))
	}

	baseURL := httputil.BaseURL(c)
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Category: model.Category,
			Maximum:  model.Maximum,
			Color:    model.Color,
		},
		Spent:          progress.Spent,
		Remaining:      progress.Remaining,
		Percentage:     progress.Percentage,
		LatestSpending: latest,
		Links: BudgetLinks{
			Self:         fmt.Sprintf("%s/v1/budgets/%s", baseURL, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", baseURL, url.QueryEscape(string(model.Category))),
		},
	}, nil
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                          // Data for the budget
}

type BudgetListResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []Budget `json:"data"`                                                          // List of budgets
}
