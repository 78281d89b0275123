package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/service"
	"github.com/moneymate/backend/internal/types"
)

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	Title      string            `json:"title" example:"Salary"`                                         // Title of the income
	Amount     int64             `json:"amount" example:"3000000"`                                       // Amount in minor currency units
	Type       models.IncomeType `json:"type" example:"SALARY" enums:"SALARY,ALLOWANCE,FINANCIAL,OTHER"` // Type of the income
	IncomeDate types.Date        `json:"incomeDate" swaggertype:"string" example:"2024-10-25"`           // Date the income is expected on
}

func (editable IncomeEditable) input(id uuid.UUID) service.IncomeInput {
	return service.IncomeInput{
		ID:         id,
		Title:      editable.Title,
		Amount:     editable.Amount,
		Type:       editable.Type,
		IncomeDate: editable.IncomeDate,
	}
}

func incomeEditable(model models.Income) IncomeEditable {
	return IncomeEditable{
		Title:      model.Title,
		Amount:     model.Amount,
		Type:       model.Type,
		IncomeDate: model.IncomeDate,
	}
}

type IncomeLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/incomes/0f6c9a3e-2d0b-4d4f-9f0e-3c5b1a7e9d21"`              // The income itself
	Executed string `json:"executed" example:"https://example.com/api/v1/incomes/0f6c9a3e-2d0b-4d4f-9f0e-3c5b1a7e9d21/executed"` // Whether the income has been received
}

type Income struct {
	models.Income
	Links           IncomeLinks `json:"links"`
	AmountFormatted string      `json:"amountFormatted" example:"3,000,000 KRW"`
}

func (co Controller) newIncome(c *gin.Context, model models.Income) Income {
	url := baseURL(c)

	return Income{
		Income: model,
		Links: IncomeLinks{
			Self:     fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
			Executed: fmt.Sprintf("%s/v1/incomes/%s/executed", url, model.ID),
		},
		AmountFormatted: co.money.Format(model.Amount),
	}
}

type IncomeList struct {
	Incomes                []Income `json:"incomes"`
	Total                  int64    `json:"total" example:"3500000"`         // Sum of all incomes
	ExecutedTotal          int64    `json:"executedTotal" example:"3000000"` // Sum of all incomes received
	TotalFormatted         string   `json:"totalFormatted" example:"3,500,000 KRW"`
	ExecutedTotalFormatted string   `json:"executedTotalFormatted" example:"3,000,000 KRW"`
	Empty                  bool     `json:"empty" example:"false"` // There are no incomes at all
}

func (co Controller) newIncomeList(c *gin.Context, list engine.IncomeList, filter IncomeQueryFilter) IncomeList {
	incomes := make([]Income, 0, len(list.Incomes))
	for _, i := range list.Incomes {
		if !titleMatches(filter.Title, i.Title) {
			continue
		}

		if filter.Type != "" && i.Type != filter.Type {
			continue
		}

		incomes = append(incomes, co.newIncome(c, i))
	}

	return IncomeList{
		Incomes:                incomes,
		Total:                  list.Total(),
		ExecutedTotal:          list.ExecutedTotal(),
		TotalFormatted:         co.money.Format(list.Total()),
		ExecutedTotalFormatted: co.money.Format(list.ExecutedTotal()),
		Empty:                  list.IsEmpty(),
	}
}

type IncomeListResponse struct {
	Data  *IncomeList `json:"data"`                                                          // The income list
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeCreateResponse struct {
	Data  []IncomeResponse `json:"data"`                                                          // List of the created incomes or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *IncomeCreateResponse) appendError(err error, message string, currentStatus int) int {
	r.Data = append(r.Data, IncomeResponse{Error: &message})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the income
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// IncomeQueryFilter narrows down the incomes returned. Totals always cover
// all incomes.
type IncomeQueryFilter struct {
	Title string            `form:"title" filterField:"false"` // By title, glob patterns with * are supported
	Type  models.IncomeType `form:"type"`                      // By type
}
