package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/store"
	"github.com/moneymate/backend/internal/types"
)

// ConsumptionInput is money the user has spent against a spending plan.
type ConsumptionInput struct {
	ID             uuid.UUID // uuid.Nil to create a new consumption
	SpendingPlanID uuid.UUID // uuid.Nil if no spending plan was selected
	Title          string
	Amount         int64
	Date           types.Date
}

type Consumptions struct {
	store *store.Store[models.Consumption]
}

func NewConsumptions(s *store.Store[models.Consumption]) *Consumptions {
	return &Consumptions{store: s}
}

// List returns the consumptions, only those for one spending plan if
// spendingPlanID is set.
func (s *Consumptions) List(ctx context.Context, spendingPlanID uuid.UUID) ([]models.Consumption, error) {
	if spendingPlanID == uuid.Nil {
		return s.store.All(ctx)
	}

	return s.store.All(ctx, models.Consumption{SpendingPlanID: spendingPlanID})
}

func (s *Consumptions) Get(ctx context.Context, id uuid.UUID) (models.Consumption, error) {
	return s.store.GetByID(ctx, id)
}

// Add validates the input and stores the consumption. The spending plan
// must exist.
func (s *Consumptions) Add(ctx context.Context, in ConsumptionInput, sink Sink) (models.Consumption, error) {
	if err := engine.ValidateAdd(in.Title, in.Amount, in.SpendingPlanID != uuid.Nil); err != nil {
		reportValidationError(sink, err, engine.PlanKindConsumption)
		return models.Consumption{}, err
	}

	consumption := models.Consumption{
		DefaultModel:   models.DefaultModel{ID: in.ID},
		SpendingPlanID: in.SpendingPlanID,
		Title:          strings.TrimSpace(in.Title),
		Amount:         in.Amount,
		Date:           in.Date,
	}

	if err := s.store.Upsert(ctx, &consumption); err != nil {
		reportStoreError(sink, err)
		return models.Consumption{}, err
	}

	sink.OnSuccess()
	return consumption, nil
}

func (s *Consumptions) Delete(ctx context.Context, id uuid.UUID, sink Sink) error {
	return deleteRecord(ctx, s.store, id, sink)
}
