package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/summary"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PotEditable struct {
	Name   string          `json:"name" binding:"required" example:"Holiday"` // Name of the pot
	Target decimal.Decimal `json:"target" example:"1500"`                    // Amount to save, must be larger than zero
	Total  decimal.Decimal `json:"total" example:"510"`                      // Amount saved so far, must not be negative
	Color  string          `json:"color" example:"#826CB0" default:""`       // Theme color as hex code
}

func (editable PotEditable) model(owner uuid.UUID) models.Pot {
	return models.Pot{
		OwnerID: owner,
		Name:    editable.Name,
		Target:  editable.Target,
		Total:   editable.Total,
		Color:   editable.Color,
	}
}

type PotLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/pots/7e9f02c0-a7ca-4cbc-8c83-3e6af64c8c5e"`              // The pot itself
	Add      string `json:"add" example:"https://example.com/api/v1/pots/7e9f02c0-a7ca-4cbc-8c83-3e6af64c8c5e/add"`           // Endpoint to add money to the pot
	Withdraw string `json:"withdraw" example:"https://example.com/api/v1/pots/7e9f02c0-a7ca-4cbc-8c83-3e6af64c8c5e/withdraw"` // Endpoint to withdraw money from the pot
}

// Pot is the representation of a Pot in API v1.
type Pot struct {
	models.DefaultModel
	PotEditable
	Percentage decimal.Decimal `json:"percentage" example:"34"` // Total in percent of the target
	Links      PotLinks        `json:"links"`
}

func newPot(c *gin.Context, model models.Pot) Pot {
	self := fmt.Sprintf("%s/v1/pots/%s", httputil.BaseURL(c), model.ID)

	return Pot{
		DefaultModel: model.DefaultModel,
		PotEditable: PotEditable{
			Name:   model.Name,
			Target: model.Target,
			Total:  model.Total,
			Color:  model.Color,
		},
		Percentage: summary.PotPercentage(model.Total, model.Target),
		Links: PotLinks{
			Self:     self,
			Add:      self + "/add",
			Withdraw: self + "/withdraw",
		},
	}
}

type PotResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Pot    `json:"data"`                                                          // Data for the pot
}

type PotListResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []Pot   `json:"data"`                                                          // List of pots
}

type PotMovement struct {
	Amount decimal.Decimal `json:"amount" example:"100"` // Requested amount. Negative amounts move nothing.
}

type PotMovementData struct {
	Pot     Pot             `json:"pot"`                   // The pot after the movement
	Applied decimal.Decimal `json:"applied" example:"90"` // The amount that was actually moved
}

type PotMovementResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *PotMovementData `json:"data"`                                                          // The result of the movement
}
