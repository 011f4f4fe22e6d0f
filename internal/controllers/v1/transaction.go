package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactions)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PUT("/:id", co.ReplaceTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// OptionsTransactions returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/transactions [options]
func (co Controller) OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		abort(c, err)
		return
	}

	_, err = co.Store.Transactions().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsGetPutPatchDelete(c)
}

// GetTransactions returns a page of transactions
//
//	@Summary		Get transactions
//	@Description	Returns a list of transactions
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	TransactionListResponse
//	@Failure		400			{object}	TransactionListResponse
//	@Failure		500			{object}	TransactionListResponse
//	@Param			search		query		string	false	"Counterparty label contains this string, ignoring case"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			sort		query		string	false	"One of latest, oldest, a-z, z-a, highest, lowest. Defaults to latest."
//	@Param			recurring	query		bool	false	"Filter by recurring state"
//	@Param			offset		query		uint	false	"The offset of the first Transaction returned. Defaults to 0."
//	@Param			limit		query		int		false	"Maximum number of Transactions to return. Defaults to 50."
//	@Security		BearerAuth
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	query, err := filter.query(httputil.GetURLFields(c.Request.URL, filter))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	transactions, total, err := co.Store.Transactions().Search(c.Request.Context(), owner(c), query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: query.Offset,
			Limit:  query.Limit,
		},
	})
}

// GetTransaction returns a specific transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Failure		500	{object}	TransactionResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := co.Store.Transactions().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// CreateTransaction creates a transaction
//
//	@Summary		Create transaction
//	@Description	Creates a transaction
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		500			{object}	TransactionResponse
//	@Param			transaction	body		TransactionEditable	true	"Transaction"
//	@Security		BearerAuth
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := editable.model(owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	if err := co.Store.Transactions().Create(c.Request.Context(), &transaction); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// ReplaceTransaction replaces all editable fields of a transaction
//
//	@Summary		Replace transaction
//	@Description	Replaces an existing transaction. All fields must be specified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		404			{object}	TransactionResponse
//	@Failure		500			{object}	TransactionResponse
//	@Param			id			path		string				true	"ID formatted as string"
//	@Param			transaction	body		TransactionEditable	true	"Transaction"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [put]
func (co Controller) ReplaceTransaction(c *gin.Context) {
	co.updateTransaction(c, false)
}

// UpdateTransaction updates a transaction
//
//	@Summary		Update transaction
//	@Description	Updates an existing transaction. Only values to be updated need to be specified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		404			{object}	TransactionResponse
//	@Failure		500			{object}	TransactionResponse
//	@Param			id			path		string				true	"ID formatted as string"
//	@Param			transaction	body		TransactionEditable	true	"Transaction"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	co.updateTransaction(c, true)
}

// updateTransaction updates the transaction with the request body. With
// merge, fields missing in the body keep their current value.
func (co Controller) updateTransaction(c *gin.Context, merge bool) {
	id, err := getID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	current, err := co.Store.Transactions().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var editable TransactionEditable
	if merge {
		editable = newTransaction(c, current).TransactionEditable
	}

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := editable.model(current.OwnerID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}
	transaction.DefaultModel = current.DefaultModel

	if err := co.Store.Transactions().Update(c.Request.Context(), &transaction); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Store.Transactions().Delete(c.Request.Context(), owner(c), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
