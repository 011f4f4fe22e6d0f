package v1

import (
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type TransactionEditable struct {
	CounterpartyLabel string          `json:"counterpartyLabel" binding:"required" example:"Emma Richardson"` // Name of the person or business on the other side of the transaction
	Category          models.Category `json:"category" binding:"required" example:"General"`                  // Category of the transaction
	Date              time.Time       `json:"date" binding:"required" example:"2024-08-19T14:23:11Z"`         // Date of the transaction
	Amount            decimal.Decimal `json:"amount" example:"-75.50"`                                        // Amount of the transaction. Income is positive, expenses are negative.
	IsRecurring       bool            `json:"isRecurring" example:"false" default:"false"`                    // Is this a recurring bill?
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(owner uuid.UUID) (models.Transaction, error) {
	category, err := models.ParseCategory(string(editable.Category))
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		OwnerID:           owner,
		CounterpartyLabel: editable.CounterpartyLabel,
		Category:          category,
		Date:              editable.Date,
		Amount:            editable.Amount,
		IsRecurring:       editable.IsRecurring,
	}, nil
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			CounterpartyLabel: model.CounterpartyLabel,
			Category:          model.Category,
			Date:              model.Date,
			Amount:            model.Amount,
			IsRecurring:       model.IsRecurring,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", httputil.BaseURL(c), model.ID),
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if the request was successful
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionQueryFilter struct {
	Search    string `form:"search"`    // Counterparty label contains this string, ignoring case
	Category  string `form:"category"`  // Exact category
	Sort      string `form:"sort"`      // One of latest, oldest, a-z, z-a, highest, lowest. Defaults to latest.
	Recurring bool   `form:"recurring"` // Is the transaction recurring?
	Offset    uint   `form:"offset"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of transactions to return. Defaults to 50. Zero or negative values return all transactions.
}

// query returns the store query for the filter. setFields are the
// fields that are set in the query string.
func (f TransactionQueryFilter) query(setFields []string) (store.TransactionQuery, error) {
	sort, err := store.ParseSort(f.Sort)
	if err != nil {
		return store.TransactionQuery{}, err
	}

	q := store.TransactionQuery{
		Search: f.Search,
		Sort:   sort,
		Offset: f.Offset,
		Limit:  f.Limit,
	}

	if f.Category != "" {
		q.Category, err = models.ParseCategory(f.Category)
		if err != nil {
			return store.TransactionQuery{}, err
		}
	}

	if slices.Contains(setFields, "Recurring") {
		q.Recurring = &f.Recurring
	}

	if !slices.Contains(setFields, "Limit") {
		q.Limit = defaultLimit
	}

	return q, nil
}

const defaultLimit = 50
