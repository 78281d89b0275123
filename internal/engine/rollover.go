package engine

import (
	"time"

	"github.com/moneymate/backend/internal/models"
)

// RolloverChange is a plan whose execution state was changed by a rollover.
type RolloverChange struct {
	Before models.SavePlan
	After  models.SavePlan
}

// RolloverAll rolls over all plans. It returns the rolled over plans in
// input order and the changes that need to be written back.
func RolloverAll(plans []models.SavePlan, today time.Time) (rolled []models.SavePlan, changes []RolloverChange) {
	rolled = make([]models.SavePlan, 0, len(plans))
	for _, plan := range plans {
		r := Rollover(plan, today)
		rolled = append(rolled, r)

		if RolloverChanged(plan, r) {
			changes = append(changes, RolloverChange{Before: plan, After: r})
		}
	}

	return rolled, changes
}
