package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/service"
	ez_uuid "github.com/moneymate/backend/internal/uuid"
)

// SavePlanEditable represents all user configurable parameters
type SavePlanEditable struct {
	Title    string              `json:"title" example:"Index fund"`       // Title of the save plan
	Amount   int64               `json:"amount" example:"500000"`          // Monthly amount in minor currency units
	PlanDay  int                 `json:"planDay" example:"25" default:"1"` // Day of the month the saving is planned for
	Category models.SaveCategory `json:"category" example:"INVESTMENT" enums:"DEPOSIT,INSTALLMENT_SAVING,SUBSCRIPTION_SAVING,INVESTMENT,INSURANCE,CHECKING,PENSION_SAVING,OTHER"`
}

func (editable SavePlanEditable) input(id uuid.UUID) service.SavePlanInput {
	if editable.PlanDay == 0 {
		editable.PlanDay = 1
	}

	return service.SavePlanInput{
		ID:       id,
		Title:    editable.Title,
		Amount:   editable.Amount,
		PlanDay:  editable.PlanDay,
		Category: editable.Category,
	}
}

func savePlanEditable(model models.SavePlan) SavePlanEditable {
	return SavePlanEditable{
		Title:    model.Title,
		Amount:   model.Amount,
		PlanDay:  model.PlanDay,
		Category: model.Category,
	}
}

// ExecutedEditable sets the execution state for the current month.
type ExecutedEditable struct {
	Executed *bool `json:"executed" binding:"required" example:"true"` // Has the plan been executed this month?
}

type SavePlanLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/save-plans/65392deb-5e92-4268-b114-297faad6cdce"`              // The save plan itself
	Executed string `json:"executed" example:"https://example.com/api/v1/save-plans/65392deb-5e92-4268-b114-297faad6cdce/executed"` // Execution state for the current month
}

type SavePlan struct {
	models.SavePlan
	Links SavePlanLinks `json:"links"`

	// These fields are computed
	State           engine.SaveState `json:"state" example:"PLANNED"`               // EXECUTED if the saving has been made this month
	Selected        bool             `json:"selected" example:"false"`              // Is the plan selected?
	AmountFormatted string           `json:"amountFormatted" example:"500,000 KRW"` // Amount for display
}

func (co Controller) newSavePlan(c *gin.Context, view engine.SavePlanView) SavePlan {
	url := baseURL(c)

	return SavePlan{
		SavePlan: view.SavePlan,
		Links: SavePlanLinks{
			Self:     fmt.Sprintf("%s/v1/save-plans/%s", url, view.ID),
			Executed: fmt.Sprintf("%s/v1/save-plans/%s/executed", url, view.ID),
		},
		State:           view.State(),
		Selected:        view.Selected,
		AmountFormatted: co.money.Format(view.Amount),
	}
}

type SaveCategoryTotal struct {
	Category               models.SaveCategory `json:"category" example:"INVESTMENT"`
	Count                  int                 `json:"count" example:"2"`              // Number of plans in the category
	Total                  int64               `json:"total" example:"800000"`         // Sum of all plans in the category
	ExecutedTotal          int64               `json:"executedTotal" example:"500000"` // Sum of the executed plans in the category
	TotalFormatted         string              `json:"totalFormatted" example:"800,000 KRW"`
	ExecutedTotalFormatted string              `json:"executedTotalFormatted" example:"500,000 KRW"`
}

type SavePlanList struct {
	Plans                  []SavePlan          `json:"plans"`                          // Save plans, rolled over to the current month
	Categories             []SaveCategoryTotal `json:"categories"`                     // Totals per category
	Total                  int64               `json:"total" example:"800000"`         // Sum of all plans
	ExecutedTotal          int64               `json:"executedTotal" example:"500000"` // Sum of all plans executed this month
	TotalFormatted         string              `json:"totalFormatted" example:"800,000 KRW"`
	ExecutedTotalFormatted string              `json:"executedTotalFormatted" example:"500,000 KRW"`
	Empty                  bool                `json:"empty" example:"false"` // There are no save plans at all
}

func (co Controller) newSavePlanList(c *gin.Context, list engine.SavePlanList, filter SavePlanQueryFilter) SavePlanList {
	if !filter.Selected.IsNil() {
		list = list.Select(filter.Selected.UUID)
	}

	plans := make([]SavePlan, 0, len(list.Plans))
	for _, p := range list.Plans {
		if !titleMatches(filter.Title, p.Title) {
			continue
		}

		if filter.Category != "" && p.Category != filter.Category {
			continue
		}

		plans = append(plans, co.newSavePlan(c, p))
	}

	categories := make([]SaveCategoryTotal, 0)
	for _, t := range list.CategoryTotals() {
		categories = append(categories, SaveCategoryTotal{
			Category:               t.Category,
			Count:                  t.Count,
			Total:                  t.Total,
			ExecutedTotal:          t.ExecutedTotal,
			TotalFormatted:         co.money.Format(t.Total),
			ExecutedTotalFormatted: co.money.Format(t.ExecutedTotal),
		})
	}

	return SavePlanList{
		Plans:                  plans,
		Categories:             categories,
		Total:                  list.Total(),
		ExecutedTotal:          list.ExecutedTotal(),
		TotalFormatted:         co.money.Format(list.Total()),
		ExecutedTotalFormatted: co.money.Format(list.ExecutedTotal()),
		Empty:                  list.IsEmpty(),
	}
}

type SavePlanListResponse struct {
	Data  *SavePlanList `json:"data"`                                                          // The save plan list
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SavePlanCreateResponse struct {
	Data  []SavePlanResponse `json:"data"`                                                          // List of the created save plans or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *SavePlanCreateResponse) appendError(err error, message string, currentStatus int) int {
	r.Data = append(r.Data, SavePlanResponse{Error: &message})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SavePlanResponse struct {
	Data  *SavePlan `json:"data"`                                                          // Data for the save plan
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SavePlanQueryFilter narrows down the plans returned. Totals always cover
// all plans.
type SavePlanQueryFilter struct {
	Title    string              `form:"title" filterField:"false"`    // By title, glob patterns with * are supported
	Category models.SaveCategory `form:"category"`                     // By category
	Selected ez_uuid.UUID        `form:"selected" filterField:"false"` // ID of the selected plan
}
