// Package service implements the plan workflows on top of the stores: live
// list views with monthly rollover, adding and editing plans with
// validation, and toggling the execution state.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/clock"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/store"
	"gorm.io/gorm"
)

// Services bundles the services working on one database.
type Services struct {
	SavePlans     *SavePlans
	SpendingPlans *SpendingPlans
	Consumptions  *Consumptions
	Incomes       *Incomes
}

// New creates all services for db. Spending plans and consumptions share a
// hub so that spending plan views are refreshed when money is spent.
func New(db *gorm.DB, c clock.Clock) Services {
	spending := store.NewHub()
	consumptions := store.New[models.Consumption](db, spending)

	return Services{
		SavePlans:     NewSavePlans(store.New[models.SavePlan](db, store.NewHub()), c),
		SpendingPlans: NewSpendingPlans(store.New[models.SpendingPlan](db, spending), consumptions),
		Consumptions:  NewConsumptions(consumptions),
		Incomes:       NewIncomes(store.New[models.Income](db, store.NewHub())),
	}
}

// Wait blocks until all background writes have finished.
func (s Services) Wait() {
	s.SavePlans.Wait()
}

// deleteRecord deletes the record and reports the outcome to sink.
func deleteRecord[T store.Record](ctx context.Context, s *store.Store[T], id uuid.UUID, sink Sink) error {
	err := s.DeleteByID(ctx, id)
	if err != nil {
		reportStoreError(sink, err)
		return err
	}

	sink.OnSuccess()
	return nil
}

// first returns the first value received from a live list.
func first[T any](ctx context.Context, flow func(context.Context) (<-chan T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var zero T
	ch, err := flow(ctx)
	if err != nil {
		return zero, err
	}

	v, ok := <-ch
	if !ok {
		return zero, ctx.Err()
	}

	return v, nil
}
