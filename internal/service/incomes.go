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
)

// IncomeInput is what the user enters for an income.
type IncomeInput struct {
	ID         uuid.UUID // uuid.Nil to create a new income
	Title      string
	Amount     int64
	Type       models.IncomeType // Empty if no type was selected
	IncomeDate types.Date
}

// Incomes passes incomes through to the store. Incomes have no monthly
// rollover.
type Incomes struct {
	store *store.Store[models.Income]
}

func NewIncomes(s *store.Store[models.Income]) *Incomes {
	return &Incomes{store: s}
}

// ListFlow returns a channel that receives the income list every time the
// incomes change.
func (s *Incomes) ListFlow(ctx context.Context) (<-chan engine.IncomeList, error) {
	snapshots, err := s.store.ObserveAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan engine.IncomeList)

	go func() {
		defer close(out)

		for incomes := range snapshots {
			select {
			case out <- engine.IncomeList{Incomes: incomes}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *Incomes) List(ctx context.Context) (engine.IncomeList, error) {
	return first(ctx, s.ListFlow)
}

func (s *Incomes) Get(ctx context.Context, id uuid.UUID) (models.Income, error) {
	return s.store.GetByID(ctx, id)
}

// Add validates the input and stores the income. Edits keep whether the
// income has been received.
func (s *Incomes) Add(ctx context.Context, in IncomeInput, sink Sink) (models.Income, error) {
	if err := engine.ValidateAdd(in.Title, in.Amount, in.Type != ""); err != nil {
		reportValidationError(sink, err, engine.PlanKindIncome)
		return models.Income{}, err
	}

	income := models.Income{
		DefaultModel: models.DefaultModel{ID: in.ID},
		Title:        strings.TrimSpace(in.Title),
		Amount:       in.Amount,
		Type:         in.Type,
		IncomeDate:   in.IncomeDate,
	}

	if in.ID != uuid.Nil {
		existing, err := s.store.GetByID(ctx, in.ID)
		if err == nil {
			income.IsExecuted = existing.IsExecuted
		} else if !errors.Is(err, models.ErrResourceNotFound) {
			reportStoreError(sink, err)
			return models.Income{}, err
		}
	}

	if err := s.store.Upsert(ctx, &income); err != nil {
		reportStoreError(sink, err)
		return models.Income{}, err
	}

	sink.OnSuccess()
	return income, nil
}

// SetExecuted records whether the income has been received.
func (s *Incomes) SetExecuted(ctx context.Context, id uuid.UUID, executed bool, sink Sink) (models.Income, error) {
	income, err := s.store.GetByID(ctx, id)
	if err != nil {
		reportStoreError(sink, err)
		return models.Income{}, err
	}

	income.IsExecuted = executed
	if err := s.store.Upsert(ctx, &income); err != nil {
		reportStoreError(sink, err)
		return models.Income{}, err
	}

	sink.OnSuccess()
	return income, nil
}

func (s *Incomes) Delete(ctx context.Context, id uuid.UUID, sink Sink) error {
	return deleteRecord(ctx, s.store, id, sink)
}
