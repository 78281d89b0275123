package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/store"
	"github.com/moneymate/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// SpendingPlanInput is what the user enters for a spending plan.
type SpendingPlanInput struct {
	ID       uuid.UUID // uuid.Nil to create a new plan
	Title    string
	Amount   int64
	Type     models.SpendingType // Empty if no type was selected
	Category models.SpendingCategory
	PlanDate types.Date
	IsApply  *bool // Defaults to true for new plans and to the current value for edits
}

// SpendingPlans serves spending plans together with the money actually spent.
type SpendingPlans struct {
	plans        *store.Store[models.SpendingPlan]
	consumptions *store.Store[models.Consumption]
}

// NewSpendingPlans returns the service. Both stores must share a hub for
// the list to follow changes to consumptions.
func NewSpendingPlans(plans *store.Store[models.SpendingPlan], consumptions *store.Store[models.Consumption]) *SpendingPlans {
	return &SpendingPlans{
		plans:        plans,
		consumptions: consumptions,
	}
}

// ListFlow returns a channel that receives the spending plan overview for
// the selected type tab every time plans or consumptions change.
func (s *SpendingPlans) ListFlow(ctx context.Context, selectedType models.SpendingType) (<-chan engine.SpendingPlanOverview, error) {
	snapshots, err := s.plans.ObserveAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan engine.SpendingPlanOverview)

	go func() {
		defer close(out)

		for plans := range snapshots {
			consumptions, err := s.consumptions.All(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				// Keep the last overview, the next change triggers a new attempt
				log.Error().Err(err).Msg("reading consumptions for spending plan list")
				continue
			}

			overview := engine.NewSpendingPlanOverview(plans, engine.BuildConsumptionSpends(plans, consumptions), selectedType)

			select {
			case out <- overview:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// List returns the current spending plan overview for the selected type.
func (s *SpendingPlans) List(ctx context.Context, selectedType models.SpendingType) (engine.SpendingPlanOverview, error) {
	return first(ctx, func(ctx context.Context) (<-chan engine.SpendingPlanOverview, error) {
		return s.ListFlow(ctx, selectedType)
	})
}

// Get returns the spending plan. If it does not exist, the error wraps
// models.ErrResourceNotFound.
func (s *SpendingPlans) Get(ctx context.Context, id uuid.UUID) (models.SpendingPlan, error) {
	return s.plans.GetByID(ctx, id)
}

// Add validates the input and stores the spending plan.
func (s *SpendingPlans) Add(ctx context.Context, in SpendingPlanInput, sink Sink) (models.SpendingPlan, error) {
	if err := engine.ValidateAdd(in.Title, in.Amount, in.Type != ""); err != nil {
		reportValidationError(sink, err, engine.PlanKindSpending)
		return models.SpendingPlan{}, err
	}

	plan := models.SpendingPlan{
		DefaultModel: models.DefaultModel{ID: in.ID},
		Title:        strings.TrimSpace(in.Title),
		Type:         in.Type,
		Category:     in.Category,
		Amount:       in.Amount,
		PlanDate:     in.PlanDate,
		IsApply:      true,
	}

	if in.ID != uuid.Nil {
		existing, err := s.plans.GetByID(ctx, in.ID)
		if err == nil {
			plan.IsApply = existing.IsApply
		} else if !errors.Is(err, models.ErrResourceNotFound) {
			reportStoreError(sink, err)
			return models.SpendingPlan{}, err
		}
	}

	if in.IsApply != nil {
		plan.IsApply = *in.IsApply
	}

	if err := s.plans.Upsert(ctx, &plan); err != nil {
		reportStoreError(sink, err)
		return models.SpendingPlan{}, err
	}

	sink.OnSuccess()
	return plan, nil
}

// Delete deletes the spending plan and all consumptions recorded for it.
func (s *SpendingPlans) Delete(ctx context.Context, id uuid.UUID, sink Sink) error {
	return deleteRecord(ctx, s.plans, id, sink)
}
