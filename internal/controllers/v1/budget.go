package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgets)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PUT("/:id", co.ReplaceBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// OptionsBudgets returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/budgets [options]
func (co Controller) OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBudgetDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		abort(c, err)
		return
	}

	_, err = co.Store.Budgets().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsGetPutPatchDelete(c)
}

// GetBudgets returns all budgets with their progress
//
//	@Summary		Get budgets
//	@Description	Returns all budgets with the amount spent in their category
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetListResponse
//	@Failure		500	{object}	BudgetListResponse
//	@Security		BearerAuth
//	@Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	data, err := co.budgets(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// budgets returns the API representation of all budgets of the
// authenticated user.
func (co Controller) budgets(c *gin.Context) ([]Budget, error) {
	budgets, err := co.Store.Budgets().List(c.Request.Context(), owner(c))
	if err != nil {
		return nil, err
	}

	transactions, err := co.allTransactions(c)
	if err != nil {
		return nil, err
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		b, err := newBudget(c, budget, transactions)
		if err != nil {
			return nil, err
		}
		data = append(data, b)
	}

	return data, nil
}

// GetBudget returns a specific budget
//
//	@Summary		Get budget
//	@Description	Returns a specific budget with the amount spent in its category
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetResponse
//	@Failure		400	{object}	BudgetResponse
//	@Failure		404	{object}	BudgetResponse
//	@Failure		500	{object}	BudgetResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := co.Store.Budgets().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	co.respondBudget(c, http.StatusOK, budget)
}

// respondBudget sends the budget with its current progress.
func (co Controller) respondBudget(c *gin.Context, code int, budget models.Budget) {
	transactions, err := co.allTransactions(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data, err := newBudget(c, budget, transactions)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	c.JSON(code, BudgetResponse{Data: &data})
}

// CreateBudget creates a budget
//
//	@Summary		Create budget
//	@Description	Creates a budget. There can only be one budget per category.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	BudgetResponse
//	@Failure		400		{object}	BudgetResponse
//	@Failure		500		{object}	BudgetResponse
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Security		BearerAuth
//	@Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := editable.model(owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	if err := co.Store.Budgets().Create(c.Request.Context(), &budget); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	co.respondBudget(c, http.StatusCreated, budget)
}

// ReplaceBudget replaces all editable fields of a budget
//
//	@Summary		Replace budget
//	@Description	Replaces an existing budget. All fields must be specified.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	BudgetResponse
//	@Failure		404		{object}	BudgetResponse
//	@Failure		500		{object}	BudgetResponse
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [put]
func (co Controller) ReplaceBudget(c *gin.Context) {
	co.updateBudget(c, false)
}

// UpdateBudget updates a budget
//
//	@Summary		Update budget
//	@Description	Updates an existing budget. Only values to be updated need to be specified.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	BudgetResponse
//	@Failure		404		{object}	BudgetResponse
//	@Failure		500		{object}	BudgetResponse
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	co.updateBudget(c, true)
}

func (co Controller) updateBudget(c *gin.Context, merge bool) {
	id, err := getID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	current, err := co.Store.Budgets().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	var editable BudgetEditable
	if merge {
		editable = BudgetEditable{
			Category: current.Category,
			Maximum:  current.Maximum,
			Color:    current.Color,
		}
	}

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := editable.model(current.OwnerID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}
	budget.DefaultModel = current.DefaultModel

	if err := co.Store.Budgets().Update(c.Request.Context(), &budget); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	co.respondBudget(c, http.StatusOK, budget)
}

// DeleteBudget deletes a budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget. Transactions in its category are not affected.
//	@Tags			Budgets
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Store.Budgets().Delete(c.Request.Context(), owner(c), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
