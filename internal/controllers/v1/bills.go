package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/summary"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// Bill is a transaction with its status on the reference day.
type Bill struct {
	Transaction
	Status summary.Status `json:"status" example:"due-soon"` // One of paid, upcoming, due-soon, none
}

type BillsData struct {
	Summary summary.BillsSummary `json:"summary"` // Count and amount per status
	Bills   []Bill               `json:"bills"`   // The bills, sorted as requested
}

type BillsResponse struct {
	Error *string    `json:"error" example:"the sort parameter must be one of latest, oldest, a-z, z-a, highest, lowest"` // The error, if any occurred
	Data  *BillsData `json:"data"`                                                                                       // Summary and list of bills
}

// RegisterBillRoutes registers the routes for bills with
// the RouterGroup that is passed.
func (co Controller) RegisterBillRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBills)
	r.GET("", co.GetBills)
}

// OptionsBills returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Bills
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/bills [options]
func (co Controller) OptionsBills(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetBills returns the bills summary
//
//	@Summary		Get bills
//	@Description	Returns the bills with their status and the paid, upcoming and due soon totals. Bills are the transactions in the Bills category unless a different category is requested. The summary covers all matching bills, offset and limit only apply to the list.
//	@Tags			Bills
//	@Produce		json
//	@Success		200			{object}	BillsResponse
//	@Failure		400			{object}	BillsResponse
//	@Failure		500			{object}	BillsResponse
//	@Param			search		query		string	false	"Counterparty label contains this string, ignoring case"
//	@Param			category	query		string	false	"Category of the bills. Defaults to Bills."
//	@Param			sort		query		string	false	"One of latest, oldest, a-z, z-a, highest, lowest. Defaults to latest."
//	@Param			recurring	query		bool	false	"Filter by recurring state"
//	@Param			offset		query		uint	false	"The offset of the first bill returned. Defaults to 0."
//	@Param			limit		query		int		false	"Maximum number of bills to return. Defaults to all."
//	@Security		BearerAuth
//	@Router			/v1/bills [get]
func (co Controller) GetBills(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		e := err.Error()
		c.JSON(status(err), BillsResponse{Error: &e})
		return
	}

	setFields := httputil.GetURLFields(c.Request.URL, filter)
	if filter.Category == "" {
		filter.Category = string(models.CategoryBills)
	}

	query, err := filter.query(setFields)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillsResponse{Error: &e})
		return
	}

	// The summary needs all bills
	offset, limit := query.Offset, query.Limit
	if !slices.Contains(setFields, "Limit") {
		limit = 0
	}
	query.Offset, query.Limit = 0, 0

	transactions, _, err := co.Store.Transactions().Search(c.Request.Context(), owner(c), query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillsResponse{Error: &e})
		return
	}

	now := co.now()
	data := BillsData{
		Summary: summary.Bills(transactions, now),
		Bills:   make([]Bill, 0),
	}

	for _, t := range page(transactions, offset, limit) {
		data.Bills = append(data.Bills, Bill{
			Transaction: newTransaction(c, t),
			Status:      summary.BillStatus(t, now),
		})
	}

	c.JSON(http.StatusOK, BillsResponse{Data: &data})
}

// page returns the part of s starting at offset with at most limit
// elements. A limit of zero or less returns all remaining elements.
func page[T any](s []T, offset uint, limit int) []T {
	if offset >= uint(len(s)) {
		return nil
	}

	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}
