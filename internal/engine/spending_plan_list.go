package engine

import (
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/models"
)

// swagger:enum ViewMode
type ViewMode string

const (
	ViewModeList ViewMode = "LIST"
	ViewModeEdit ViewMode = "EDIT"
)

// SpendingPlanView is a spending plan together with its transient selection state.
type SpendingPlanView struct {
	models.SpendingPlan
	Selected bool
}

// ConsumptionSpend is the actual spending recorded against one plan.
type ConsumptionSpend struct {
	Plan         SpendingPlanView
	Consumptions []models.Consumption
}

// Total is the sum of all consumptions.
func (c ConsumptionSpend) Total() int64 {
	var sum int64
	for _, consumption := range c.Consumptions {
		sum += consumption.Amount
	}
	return sum
}

// BuildConsumptionSpends groups consumptions by the consumption plan they
// were spent against. The result follows the order of plans. Only plans of
// type CONSUMPTION_PLAN with at least one consumption are included,
// consumptions of other plans are left out.
func BuildConsumptionSpends(plans []models.SpendingPlan, consumptions []models.Consumption) []ConsumptionSpend {
	byPlan := make(map[uuid.UUID][]models.Consumption)
	for _, c := range consumptions {
		byPlan[c.SpendingPlanID] = append(byPlan[c.SpendingPlanID], c)
	}

	spends := make([]ConsumptionSpend, 0, len(byPlan))
	for _, p := range plans {
		if p.Type != models.SpendingTypeConsumptionPlan {
			continue
		}

		cs, ok := byPlan[p.ID]
		if !ok {
			continue
		}

		spends = append(spends, ConsumptionSpend{
			Plan:         SpendingPlanView{SpendingPlan: p},
			Consumptions: cs,
		})
	}

	return spends
}

// SpendingPlanOverview combines spending plans with the actual spending
// layered on top of them, for one selected spending type tab.
type SpendingPlanOverview struct {
	Plans        []SpendingPlanView
	Actuals      []ConsumptionSpend
	SelectedType models.SpendingType
}

// NewSpendingPlanOverview wraps plans and actuals, none of them selected.
// An unknown selected type is treated as ALL.
func NewSpendingPlanOverview(plans []models.SpendingPlan, actuals []ConsumptionSpend, selectedType models.SpendingType) SpendingPlanOverview {
	if !selectedType.Valid() {
		selectedType = models.SpendingTypeAll
	}

	views := make([]SpendingPlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, SpendingPlanView{SpendingPlan: p})
	}

	return SpendingPlanOverview{
		Plans:        views,
		Actuals:      actuals,
		SelectedType: selectedType,
	}
}

// PredictTotal is the sum of all plans that are applied.
func (o SpendingPlanOverview) PredictTotal() int64 {
	var sum int64
	for _, p := range o.Plans {
		if p.IsApply {
			sum += p.Amount
		}
	}
	return sum
}

// Total is the sum of all plans, applied or not.
func (o SpendingPlanOverview) Total() int64 {
	var sum int64
	for _, p := range o.Plans {
		sum += p.Amount
	}
	return sum
}

// ConsumptionTotal is the sum of all actual spending.
func (o SpendingPlanOverview) ConsumptionTotal() int64 {
	var sum int64
	for _, a := range o.Actuals {
		sum += a.Total()
	}
	return sum
}

// RealTotal is the predicted spending plus what has already been spent.
func (o SpendingPlanOverview) RealTotal() int64 {
	return o.PredictTotal() + o.ConsumptionTotal()
}

// TypeTotals returns the sum of all plan amounts per stored spending type.
func (o SpendingPlanOverview) TypeTotals() map[models.SpendingType]int64 {
	totals := map[models.SpendingType]int64{
		models.SpendingTypeLivingExpense:   0,
		models.SpendingTypeConsumptionPlan: 0,
	}

	for _, p := range o.Plans {
		totals[p.Type] += p.Amount
	}

	return totals
}

// FilteredPlans returns the plans shown on the selected tab.
func (o SpendingPlanOverview) FilteredPlans() []SpendingPlanView {
	if o.SelectedType == models.SpendingTypeAll {
		return o.Plans
	}

	filtered := make([]SpendingPlanView, 0, len(o.Plans))
	for _, p := range o.Plans {
		if p.Type == o.SelectedType {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilteredActuals returns the actual spending shown on the selected tab.
// Actual spending is only shown for ALL and CONSUMPTION_PLAN.
func (o SpendingPlanOverview) FilteredActuals() []ConsumptionSpend {
	switch o.SelectedType {
	case models.SpendingTypeAll, models.SpendingTypeConsumptionPlan:
		return o.Actuals
	default:
		return []ConsumptionSpend{}
	}
}

// Select returns a copy where exactly the plan with id is selected, in
// the plans as well as in the actuals wrapping the same plan.
func (o SpendingPlanOverview) Select(id uuid.UUID) SpendingPlanOverview {
	return o.withSelection(func(p SpendingPlanView) bool {
		return p.ID == id
	})
}

// Toggle flips the selection of the plan with id and deselects all others.
func (o SpendingPlanOverview) Toggle(id uuid.UUID) SpendingPlanOverview {
	selected := false
	for _, p := range o.Plans {
		if p.ID == id {
			selected = !p.Selected
			break
		}
	}

	return o.withSelection(func(p SpendingPlanView) bool {
		return selected && p.ID == id
	})
}

func (o SpendingPlanOverview) withSelection(selected func(SpendingPlanView) bool) SpendingPlanOverview {
	plans := make([]SpendingPlanView, 0, len(o.Plans))
	for _, p := range o.Plans {
		p.Selected = selected(p)
		plans = append(plans, p)
	}

	actuals := make([]ConsumptionSpend, 0, len(o.Actuals))
	for _, a := range o.Actuals {
		a.Plan.Selected = selected(a.Plan)
		actuals = append(actuals, a)
	}

	return SpendingPlanOverview{
		Plans:        plans,
		Actuals:      actuals,
		SelectedType: o.SelectedType,
	}
}

// SelectedID returns the ID of the selected plan, if any.
func (o SpendingPlanOverview) SelectedID() (uuid.UUID, bool) {
	for _, p := range o.Plans {
		if p.Selected {
			return p.ID, true
		}
	}
	return uuid.Nil, false
}

// ViewMode is EDIT while a plan is selected.
func (o SpendingPlanOverview) ViewMode() ViewMode {
	if _, ok := o.SelectedID(); ok {
		return ViewModeEdit
	}
	return ViewModeList
}

func (o SpendingPlanOverview) IsEmpty() bool {
	return len(o.Plans) == 0
}
