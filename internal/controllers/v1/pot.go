package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/summary"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterPotRoutes registers the routes for pots with
// the RouterGroup that is passed.
func (co Controller) RegisterPotRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsPots)
		r.GET("", co.GetPots)
		r.POST("", co.CreatePot)
	}

	// Pot with ID
	{
		r.OPTIONS("/:id", co.OptionsPotDetail)
		r.GET("/:id", co.GetPot)
		r.PUT("/:id", co.ReplacePot)
		r.PATCH("/:id", co.UpdatePot)
		r.DELETE("/:id", co.DeletePot)
	}

	// Money movements
	{
		r.OPTIONS("/:id/add", co.OptionsPotMovement)
		r.POST("/:id/add", co.AddToPot)
		r.OPTIONS("/:id/withdraw", co.OptionsPotMovement)
		r.POST("/:id/withdraw", co.WithdrawFromPot)
	}
}

// OptionsPots returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Pots
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/pots [options]
func (co Controller) OptionsPots(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsPotDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Pots
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id} [options]
func (co Controller) OptionsPotDetail(c *gin.Context) {
	if _, ok := co.findPot(c); !ok {
		return
	}

	httputil.OptionsGetPutPatchDelete(c)
}

// OptionsPotMovement returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Pots
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id}/add [options]
//	@Router			/v1/pots/{id}/withdraw [options]
func (co Controller) OptionsPotMovement(c *gin.Context) {
	if _, ok := co.findPot(c); !ok {
		return
	}

	httputil.OptionsPost(c)
}

// GetPots returns all pots
//
//	@Summary		Get pots
//	@Description	Returns all pots
//	@Tags			Pots
//	@Produce		json
//	@Success		200	{object}	PotListResponse
//	@Failure		500	{object}	PotListResponse
//	@Security		BearerAuth
//	@Router			/v1/pots [get]
func (co Controller) GetPots(c *gin.Context) {
	pots, err := co.Store.Pots().List(c.Request.Context(), owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotListResponse{Error: &e})
		return
	}

	data := make([]Pot, 0, len(pots))
	for _, pot := range pots {
		data = append(data, newPot(c, pot))
	}

	c.JSON(http.StatusOK, PotListResponse{Data: data})
}

// GetPot returns a specific pot
//
//	@Summary		Get pot
//	@Description	Returns a specific pot
//	@Tags			Pots
//	@Produce		json
//	@Success		200	{object}	PotResponse
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id} [get]
func (co Controller) GetPot(c *gin.Context) {
	pot, ok := co.findPot(c)
	if !ok {
		return
	}

	data := newPot(c, pot)
	c.JSON(http.StatusOK, PotResponse{Data: &data})
}

// CreatePot creates a pot
//
//	@Summary		Create pot
//	@Description	Creates a pot
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	PotResponse
//	@Failure		400	{object}	PotResponse
//	@Failure		500	{object}	PotResponse
//	@Param			pot	body		PotEditable	true	"Pot"
//	@Security		BearerAuth
//	@Router			/v1/pots [post]
func (co Controller) CreatePot(c *gin.Context) {
	var editable PotEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{Error: &e})
		return
	}

	pot := editable.model(owner(c))
	if err := co.Store.Pots().Create(c.Request.Context(), &pot); err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{Error: &e})
		return
	}

	data := newPot(c, pot)
	c.JSON(http.StatusCreated, PotResponse{Data: &data})
}

// ReplacePot replaces all editable fields of a pot
//
//	@Summary		Replace pot
//	@Description	Replaces an existing pot. All fields must be specified.
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	PotResponse
//	@Failure		400	{object}	PotResponse
//	@Failure		404	{object}	PotResponse
//	@Failure		500	{object}	PotResponse
//	@Param			id	path		string		true	"ID formatted as string"
//	@Param			pot	body		PotEditable	true	"Pot"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id} [put]
func (co Controller) ReplacePot(c *gin.Context) {
	co.updatePot(c, false)
}

// UpdatePot updates a pot
//
//	@Summary		Update pot
//	@Description	Updates an existing pot. Only values to be updated need to be specified.
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	PotResponse
//	@Failure		400	{object}	PotResponse
//	@Failure		404	{object}	PotResponse
//	@Failure		500	{object}	PotResponse
//	@Param			id	path		string		true	"ID formatted as string"
//	@Param			pot	body		PotEditable	true	"Pot"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id} [patch]
func (co Controller) UpdatePot(c *gin.Context) {
	co.updatePot(c, true)
}

func (co Controller) updatePot(c *gin.Context, merge bool) {
	current, ok := co.findPot(c)
	if !ok {
		return
	}

	var editable PotEditable
	if merge {
		editable = newPot(c, current).PotEditable
	}

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{Error: &e})
		return
	}

	pot := editable.model(current.OwnerID)
	pot.DefaultModel = current.DefaultModel

	if err := co.Store.Pots().Update(c.Request.Context(), &pot); err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{Error: &e})
		return
	}

	data := newPot(c, pot)
	c.JSON(http.StatusOK, PotResponse{Data: &data})
}

// DeletePot deletes a pot
//
//	@Summary		Delete pot
//	@Description	Deletes a pot
//	@Tags			Pots
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id} [delete]
func (co Controller) DeletePot(c *gin.Context) {
	id, err := getID(c)
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Store.Pots().Delete(c.Request.Context(), owner(c), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddToPot adds money to a pot
//
//	@Summary		Add money
//	@Description	Adds money to a pot. The amount is capped so that the total does not exceed the target.
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	PotMovementResponse
//	@Failure		400		{object}	PotMovementResponse
//	@Failure		404		{object}	PotMovementResponse
//	@Failure		500		{object}	PotMovementResponse
//	@Param			id		path		string		true	"ID formatted as string"
//	@Param			amount	body		PotMovement	true	"Amount"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id}/add [post]
func (co Controller) AddToPot(c *gin.Context) {
	co.movePotMoney(c, summary.AddMoney)
}

// WithdrawFromPot withdraws money from a pot
//
//	@Summary		Withdraw money
//	@Description	Withdraws money from a pot. The amount is capped at the current total.
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	PotMovementResponse
//	@Failure		400		{object}	PotMovementResponse
//	@Failure		404		{object}	PotMovementResponse
//	@Failure		500		{object}	PotMovementResponse
//	@Param			id		path		string		true	"ID formatted as string"
//	@Param			amount	body		PotMovement	true	"Amount"
//	@Security		BearerAuth
//	@Router			/v1/pots/{id}/withdraw [post]
func (co Controller) WithdrawFromPot(c *gin.Context) {
	co.movePotMoney(c, func(total, _, requested decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
		return summary.WithdrawMoney(total, requested)
	})
}

// movePotMoney reads the pot, applies move and writes the new total.
// Concurrent movements on the same pot are not serialized, the last
// write wins.
func (co Controller) movePotMoney(c *gin.Context, move func(total, target, requested decimal.Decimal) (decimal.Decimal, decimal.Decimal)) {
	pot, ok := co.findPot(c)
	if !ok {
		return
	}

	var movement PotMovement
	if err := httputil.BindData(c, &movement); err != nil {
		e := err.Error()
		c.JSON(status(err), PotMovementResponse{Error: &e})
		return
	}

	total, applied := move(pot.Total, pot.Target, movement.Amount)
	pot.Total = total

	if err := co.Store.Pots().Update(c.Request.Context(), &pot); err != nil {
		e := err.Error()
		c.JSON(status(err), PotMovementResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PotMovementResponse{Data: &PotMovementData{
		Pot:     newPot(c, pot),
		Applied: applied,
	}})
}

// findPot loads the pot with the ID from the URL. If that fails, the
// error response is sent and ok is false.
func (co Controller) findPot(c *gin.Context) (pot models.Pot, ok bool) {
	id, err := getID(c)
	if err != nil {
		abort(c, err)
		return pot, false
	}

	pot, err = co.Store.Pots().Get(c.Request.Context(), owner(c), id)
	if err != nil {
		abort(c, err)
		return pot, false
	}

	return pot, true
}
