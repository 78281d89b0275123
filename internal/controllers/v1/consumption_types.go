package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/service"
	"github.com/moneymate/backend/internal/types"
	ez_uuid "github.com/moneymate/backend/internal/uuid"
)

// ConsumptionEditable represents all user configurable parameters
type ConsumptionEditable struct {
	SpendingPlanID uuid.UUID  `json:"spendingPlanId" example:"3863c8c7-f1e4-4a1b-9b6e-6b0c1f9a8e21"` // ID of the spending plan the money was spent against
	Title          string     `json:"title" example:"Weekly market"`                                 // What the money was spent on
	Amount         int64      `json:"amount" example:"20000"`                                        // Amount in minor currency units
	Date           types.Date `json:"date" swaggertype:"string" example:"2024-10-12"`                // Date the money was spent
}

func (editable ConsumptionEditable) input() service.ConsumptionInput {
	return service.ConsumptionInput{
		SpendingPlanID: editable.SpendingPlanID,
		Title:          editable.Title,
		Amount:         editable.Amount,
		Date:           editable.Date,
	}
}

type ConsumptionLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/consumptions/8e4b4f2c-0b5e-4c54-a3b1-0b6d0e3a4c55"`           // The consumption itself
	SpendingPlan string `json:"spendingPlan" example:"https://example.com/api/v1/spending-plans/3863c8c7-f1e4-4a1b-9b6e-6b0c1f9a8e21"` // The spending plan
}

type Consumption struct {
	models.Consumption
	Links           ConsumptionLinks `json:"links"`
	AmountFormatted string           `json:"amountFormatted" example:"20,000 KRW"`
}

func (co Controller) newConsumption(c *gin.Context, model models.Consumption) Consumption {
	url := baseURL(c)

	return Consumption{
		Consumption: model,
		Links: ConsumptionLinks{
			Self:         fmt.Sprintf("%s/v1/consumptions/%s", url, model.ID),
			SpendingPlan: fmt.Sprintf("%s/v1/spending-plans/%s", url, model.SpendingPlanID),
		},
		AmountFormatted: co.money.Format(model.Amount),
	}
}

type ConsumptionListResponse struct {
	Data  []Consumption `json:"data"`                                                          // List of consumptions
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ConsumptionCreateResponse struct {
	Data  []ConsumptionResponse `json:"data"`                                                          // List of the created consumptions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ConsumptionCreateResponse) appendError(err error, message string, currentStatus int) int {
	r.Data = append(r.Data, ConsumptionResponse{Error: &message})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ConsumptionResponse struct {
	Data  *Consumption `json:"data"`                                                          // Data for the consumption
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ConsumptionQueryFilter struct {
	SpendingPlanID ez_uuid.UUID `form:"spendingPlan"`              // By ID of the spending plan
	Title          string       `form:"title" filterField:"false"` // By title, glob patterns with * are supported
}
