package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/summary"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// latestTransactionsCount is the number of transactions in the overview.
const latestTransactionsCount = 5

type OverviewData struct {
	Balance            Balance              `json:"balance"`                    // The balance
	PotsTotalSaved     decimal.Decimal      `json:"potsTotalSaved" example:"850"` // Sum of the totals of all pots
	Pots               []Pot                `json:"pots"`                       // All pots
	Budgets            []Budget             `json:"budgets"`                    // All budgets with their progress
	Bills              summary.BillsSummary `json:"bills"`                      // Summary of the transactions in the Bills category
	LatestTransactions []Transaction        `json:"latestTransactions"`         // The most recent transactions
}

type OverviewResponse struct {
	Error *string       `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *OverviewData `json:"data"`                                                                // The overview
}

// RegisterOverviewRoutes registers the routes for the overview with
// the RouterGroup that is passed.
func (co Controller) RegisterOverviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsOverview)
	r.GET("", co.GetOverview)
}

// OptionsOverview returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Overview
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/overview [options]
func (co Controller) OptionsOverview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetOverview returns the dashboard overview
//
//	@Summary		Get overview
//	@Description	Returns the balance, pots, budgets, bills summary and latest transactions in one response
//	@Tags			Overview
//	@Produce		json
//	@Success		200	{object}	OverviewResponse
//	@Failure		500	{object}	OverviewResponse
//	@Security		BearerAuth
//	@Router			/v1/overview [get]
func (co Controller) GetOverview(c *gin.Context) {
	data, err := co.overview(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, OverviewResponse{Data: &data})
}

func (co Controller) overview(c *gin.Context) (OverviewData, error) {
	ctx := c.Request.Context()

	balance, err := co.Store.Balances().Get(ctx, owner(c))
	if err != nil {
		return OverviewData{}, err
	}

	pots, err := co.Store.Pots().List(ctx, owner(c))
	if err != nil {
		return OverviewData{}, err
	}

	budgets, err := co.Store.Budgets().List(ctx, owner(c))
	if err != nil {
		return OverviewData{}, err
	}

	transactions, err := co.allTransactions(c)
	if err != nil {
		return OverviewData{}, err
	}

	data := OverviewData{
		Balance:            newBalance(balance),
		PotsTotalSaved:     summary.TotalSaved(pots),
		Pots:               make([]Pot, 0, len(pots)),
		Budgets:            make([]Budget, 0, len(budgets)),
		LatestTransactions: make([]Transaction, 0, latestTransactionsCount),
	}

	for _, pot := range pots {
		data.Pots = append(data.Pots, newPot(c, pot))
	}

	for _, budget := range budgets {
		b, err := newBudget(c, budget, transactions)
		if err != nil {
			return OverviewData{}, err
		}
		data.Budgets = append(data.Budgets, b)
	}

	bills := make([]models.Transaction, 0)
	for _, t := range transactions {
		if t.Category == models.CategoryBills {
			bills = append(bills, t)
		}
	}
	data.Bills = summary.Bills(bills, co.now())

	// transactions are sorted latest first
	for _, t := range page(transactions, 0, latestTransactionsCount) {
		data.LatestTransactions = append(data.LatestTransactions, newTransaction(c, t))
	}

	return data, nil
}
