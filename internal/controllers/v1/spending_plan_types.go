package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/service"
	"github.com/moneymate/backend/internal/types"
	ez_uuid "github.com/moneymate/backend/internal/uuid"
)

// SpendingPlanEditable represents all user configurable parameters
type SpendingPlanEditable struct {
	Title    string                  `json:"title" example:"Groceries"`                                             // Title of the spending plan
	Type     models.SpendingType     `json:"type" example:"LIVING_EXPENSE" enums:"LIVING_EXPENSE,CONSUMPTION_PLAN"` // Type of the spending plan
	Category models.SpendingCategory `json:"category" swaggertype:"string" example:"FOOD"`                          // Category code, null if no category is selected
	Amount   int64                   `json:"amount" example:"300000"`                                               // Planned amount in minor currency units
	PlanDate types.Date              `json:"planDate" swaggertype:"string" example:"2024-10-05"`                    // Date the spending is planned for
	IsApply  *bool                   `json:"isApply" example:"true" default:"true"`                                 // Does the plan count towards the predicted spending?
}

func (editable SpendingPlanEditable) input(id uuid.UUID) service.SpendingPlanInput {
	return service.SpendingPlanInput{
		ID:       id,
		Title:    editable.Title,
		Amount:   editable.Amount,
		Type:     editable.Type,
		Category: editable.Category,
		PlanDate: editable.PlanDate,
		IsApply:  editable.IsApply,
	}
}

func spendingPlanEditable(model models.SpendingPlan) SpendingPlanEditable {
	isApply := model.IsApply

	return SpendingPlanEditable{
		Title:    model.Title,
		Type:     model.Type,
		Category: model.Category,
		Amount:   model.Amount,
		PlanDate: model.PlanDate,
		IsApply:  &isApply,
	}
}

type SpendingPlanLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/spending-plans/3863c8c7-f1e4-4a1b-9b6e-6b0c1f9a8e21"`                    // The spending plan itself
	Consumptions string `json:"consumptions" example:"https://example.com/api/v1/consumptions?spendingPlan=3863c8c7-f1e4-4a1b-9b6e-6b0c1f9a8e21"` // Consumptions recorded for the plan
}

type SpendingPlan struct {
	models.SpendingPlan
	Links SpendingPlanLinks `json:"links"`

	// These fields are computed
	Selected        bool   `json:"selected" example:"false"`
	AmountFormatted string `json:"amountFormatted" example:"300,000 KRW"`
}

func (co Controller) newSpendingPlan(c *gin.Context, view engine.SpendingPlanView) SpendingPlan {
	url := baseURL(c)

	return SpendingPlan{
		SpendingPlan: view.SpendingPlan,
		Links: SpendingPlanLinks{
			Self:         fmt.Sprintf("%s/v1/spending-plans/%s", url, view.ID),
			Consumptions: fmt.Sprintf("%s/v1/consumptions?spendingPlan=%s", url, view.ID),
		},
		Selected:        view.Selected,
		AmountFormatted: co.money.Format(view.Amount),
	}
}

// ConsumptionSpend is the money spent against one spending plan.
type ConsumptionSpend struct {
	Plan           SpendingPlan  `json:"plan"`
	Consumptions   []Consumption `json:"consumptions"`
	Total          int64         `json:"total" example:"45000"` // Sum of all consumptions
	TotalFormatted string        `json:"totalFormatted" example:"45,000 KRW"`
}

type SpendingPlanOverview struct {
	Type                      models.SpendingType           `json:"type" example:"ALL"`               // The selected type tab
	ViewMode                  engine.ViewMode               `json:"viewMode" example:"LIST"`          // EDIT while a plan is selected
	Plans                     []SpendingPlan                `json:"plans"`                            // Plans shown on the selected tab
	Actuals                   []ConsumptionSpend            `json:"actuals"`                          // Actual spending shown on the selected tab
	PredictTotal              int64                         `json:"predictTotal" example:"450000"`    // Sum of all applied plans
	ConsumptionTotal          int64                         `json:"consumptionTotal" example:"45000"` // Sum of all actual spending
	RealTotal                 int64                         `json:"realTotal" example:"495000"`       // Predicted plus actual spending
	Total                     int64                         `json:"total" example:"500000"`           // Sum of all plans, applied or not
	TypeTotals                map[models.SpendingType]int64 `json:"typeTotals"`                       // Sum of all plans per type
	PredictTotalFormatted     string                        `json:"predictTotalFormatted" example:"450,000 KRW"`
	ConsumptionTotalFormatted string                        `json:"consumptionTotalFormatted" example:"45,000 KRW"`
	RealTotalFormatted        string                        `json:"realTotalFormatted" example:"495,000 KRW"`
	Empty                     bool                          `json:"empty" example:"false"` // There are no spending plans at all
}

func (co Controller) newSpendingPlanOverview(c *gin.Context, overview engine.SpendingPlanOverview, filter SpendingPlanQueryFilter) SpendingPlanOverview {
	if !filter.Selected.IsNil() {
		overview = overview.Select(filter.Selected.UUID)
	}

	plans := make([]SpendingPlan, 0)
	for _, p := range overview.FilteredPlans() {
		if titleMatches(filter.Title, p.Title) {
			plans = append(plans, co.newSpendingPlan(c, p))
		}
	}

	actuals := make([]ConsumptionSpend, 0)
	for _, a := range overview.FilteredActuals() {
		if !titleMatches(filter.Title, a.Plan.Title) {
			continue
		}

		consumptions := make([]Consumption, 0, len(a.Consumptions))
		for _, consumption := range a.Consumptions {
			consumptions = append(consumptions, co.newConsumption(c, consumption))
		}

		actuals = append(actuals, ConsumptionSpend{
			Plan:           co.newSpendingPlan(c, a.Plan),
			Consumptions:   consumptions,
			Total:          a.Total(),
			TotalFormatted: co.money.Format(a.Total()),
		})
	}

	return SpendingPlanOverview{
		Type:                      overview.SelectedType,
		ViewMode:                  overview.ViewMode(),
		Plans:                     plans,
		Actuals:                   actuals,
		PredictTotal:              overview.PredictTotal(),
		ConsumptionTotal:          overview.ConsumptionTotal(),
		RealTotal:                 overview.RealTotal(),
		Total:                     overview.Total(),
		TypeTotals:                overview.TypeTotals(),
		PredictTotalFormatted:     co.money.Format(overview.PredictTotal()),
		ConsumptionTotalFormatted: co.money.Format(overview.ConsumptionTotal()),
		RealTotalFormatted:        co.money.Format(overview.RealTotal()),
		Empty:                     overview.IsEmpty(),
	}
}

type SpendingPlanOverviewResponse struct {
	Data  *SpendingPlanOverview `json:"data"`                                                          // The spending plan overview
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SpendingPlanCreateResponse struct {
	Data  []SpendingPlanResponse `json:"data"`                                                          // List of the created spending plans or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *SpendingPlanCreateResponse) appendError(err error, message string, currentStatus int) int {
	r.Data = append(r.Data, SpendingPlanResponse{Error: &message})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SpendingPlanResponse struct {
	Data  *SpendingPlan `json:"data"`                                                          // Data for the spending plan
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SpendingPlanQueryFilter selects the type tab and narrows down the plans
// and actuals returned. Totals always cover all plans.
type SpendingPlanQueryFilter struct {
	Type     models.SpendingType `form:"type" filterField:"false"`     // Type tab, ALL if not set or unknown
	Title    string              `form:"title" filterField:"false"`    // By title, glob patterns with * are supported
	Selected ez_uuid.UUID        `form:"selected" filterField:"false"` // ID of the selected plan
}
