package engine

import (
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/models"
)

// swagger:enum SaveState
type SaveState string

const (
	SaveStateExecuted SaveState = "EXECUTED"
	SaveStatePlanned  SaveState = "PLANNED"
)

// SavePlanView is a save plan together with its transient selection state.
type SavePlanView struct {
	models.SavePlan
	Selected bool
}

// State returns whether the saving has been made this month.
func (p SavePlanView) State() SaveState {
	if p.Executed {
		return SaveStateExecuted
	}
	return SaveStatePlanned
}

// SavePlanList is the list of save plans shown to the user. It is never
// persisted, all totals are derived from the plans on each call.
type SavePlanList struct {
	Plans []SavePlanView
}

// NewSavePlanList wraps plans, none of them selected.
func NewSavePlanList(plans []models.SavePlan) SavePlanList {
	views := make([]SavePlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, SavePlanView{SavePlan: p})
	}

	return SavePlanList{Plans: views}
}

// ExecutedTotal is the sum of the amounts of all executed plans.
func (l SavePlanList) ExecutedTotal() int64 {
	var sum int64
	for _, p := range l.Plans {
		if p.Executed {
			sum += p.Amount
		}
	}
	return sum
}

// Total is the sum of the amounts of all plans.
func (l SavePlanList) Total() int64 {
	var sum int64
	for _, p := range l.Plans {
		sum += p.Amount
	}
	return sum
}

func (l SavePlanList) IsEmpty() bool {
	return len(l.Plans) == 0
}

// CategoryTotal holds the totals for all plans of one category.
type CategoryTotal struct {
	Category      models.SaveCategory
	Count         int
	Total         int64
	ExecutedTotal int64
}

// CategoryTotals groups the plans by category. Categories are returned in
// the order of models.SaveCategories, categories without plans are omitted.
func (l SavePlanList) CategoryTotals() []CategoryTotal {
	byCategory := make(map[models.SaveCategory]*CategoryTotal)
	for _, p := range l.Plans {
		t, ok := byCategory[p.Category]
		if !ok {
			t = &CategoryTotal{Category: p.Category}
			byCategory[p.Category] = t
		}

		t.Count++
		t.Total += p.Amount
		if p.Executed {
			t.ExecutedTotal += p.Amount
		}
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, c := range models.SaveCategories {
		if t, ok := byCategory[c]; ok {
			totals = append(totals, *t)
		}
	}

	return totals
}

// Select returns a copy of the list where only the plan with id is selected.
func (l SavePlanList) Select(id uuid.UUID) SavePlanList {
	plans := make([]SavePlanView, 0, len(l.Plans))
	for _, p := range l.Plans {
		p.Selected = p.ID == id
		plans = append(plans, p)
	}

	return SavePlanList{Plans: plans}
}

// SelectedID returns the ID of the selected plan, if any.
func (l SavePlanList) SelectedID() (uuid.UUID, bool) {
	for _, p := range l.Plans {
		if p.Selected {
			return p.ID, true
		}
	}
	return uuid.Nil, false
}
