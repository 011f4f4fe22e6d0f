package v1

import (
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BalanceEditable struct {
	Current  decimal.Decimal `json:"current" example:"4836"`   // Current balance
	Income   decimal.Decimal `json:"income" example:"3814.25"` // Income
	Expenses decimal.Decimal `json:"expenses" example:"1700.5"` // Expenses
	Currency string          `json:"currency" example:"USD"`   // ISO 4217 currency code. Defaults to USD.
}

// Balance is the representation of the Balance in API v1.
type Balance struct {
	BalanceEditable
	UpdatedAt *time.Time `json:"updatedAt" example:"2024-04-17T20:14:01.048145Z"` // Last time the balance was saved. null if it was never saved.
}

func newBalance(model models.Balance) Balance {
	b := Balance{
		BalanceEditable: BalanceEditable{
			Current:  model.Current,
			Income:   model.Income,
			Expenses: model.Expenses,
			Currency: model.Currency,
		},
	}

	if !model.UpdatedAt.IsZero() {
		b.UpdatedAt = &model.UpdatedAt
	}

	return b
}

type BalanceResponse struct {
	Error *string  `json:"error" example:"the currency must be a valid ISO 4217 currency code"` // The error, if any occurred
	Data  *Balance `json:"data"`                                                                // Data for the balance
}

// RegisterBalanceRoutes registers the routes for the balance with
// the RouterGroup that is passed.
func (co Controller) RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBalance)
	r.GET("", co.GetBalance)
	r.PUT("", co.SetBalance)
}

// OptionsBalance returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Balance
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/balance [options]
func (co Controller) OptionsBalance(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// GetBalance returns the balance
//
//	@Summary		Get balance
//	@Description	Returns the balance. If it was never set, all amounts are zero.
//	@Tags			Balance
//	@Produce		json
//	@Success		200	{object}	BalanceResponse
//	@Failure		500	{object}	BalanceResponse
//	@Security		BearerAuth
//	@Router			/v1/balance [get]
func (co Controller) GetBalance(c *gin.Context) {
	balance, err := co.Store.Balances().Get(c.Request.Context(), owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	data := newBalance(balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &data})
}

// SetBalance sets the balance
//
//	@Summary		Set balance
//	@Description	Replaces the balance. Fields that are not set are zero.
//	@Tags			Balance
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BalanceResponse
//	@Failure		400		{object}	BalanceResponse
//	@Failure		500		{object}	BalanceResponse
//	@Param			balance	body		BalanceEditable	true	"Balance"
//	@Security		BearerAuth
//	@Router			/v1/balance [put]
func (co Controller) SetBalance(c *gin.Context) {
	var editable BalanceEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	balance := models.Balance{
		OwnerID:  owner(c),
		Current:  editable.Current,
		Income:   editable.Income,
		Expenses: editable.Expenses,
		Currency: editable.Currency,
	}

	if err := co.Store.Balances().Save(c.Request.Context(), &balance); err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	data := newBalance(balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &data})
}
