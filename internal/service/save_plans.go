package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/clock"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SavePlanInput is what the user enters for a save plan.
type SavePlanInput struct {
	ID       uuid.UUID // uuid.Nil to create a new plan
	Title    string
	Amount   int64
	PlanDay  int
	Category models.SaveCategory // Empty if no category was selected
}

// SavePlans serves save plans as seen in the current month.
type SavePlans struct {
	store *store.Store[models.SavePlan]
	clock clock.Clock

	// In-flight rollover write-backs
	pending sync.WaitGroup
}

func NewSavePlans(s *store.Store[models.SavePlan], c clock.Clock) *SavePlans {
	return &SavePlans{
		store: s,
		clock: c,
	}
}

// ListFlow returns a channel that receives the save plan list every time
// the plans change. Every list is rolled over to the current month.
//
// Plans whose execution state changed in the rollover are written back in
// the background. The list is delivered without waiting for these writes,
// failed writes are logged and corrected by the next rollover. A write-back
// only applies if the stored plan is still in the state that was read, so
// plans deleted or executed in the meantime are left alone.
//
// The channel is closed when ctx is done. No write-backs are started after
// that, the ones already started still run to completion.
func (s *SavePlans) ListFlow(ctx context.Context) (<-chan engine.SavePlanList, error) {
	snapshots, err := s.store.ObserveAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan engine.SavePlanList)

	go func() {
		defer close(out)

		for plans := range snapshots {
			rolled, changes := engine.RolloverAll(plans, s.clock.Now())

			if len(changes) > 0 && ctx.Err() == nil {
				s.writeBack(ctx, changes)
			}

			select {
			case out <- engine.NewSavePlanList(rolled):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// List returns the current save plan list.
func (s *SavePlans) List(ctx context.Context) (engine.SavePlanList, error) {
	return first(ctx, s.ListFlow)
}

// Wait blocks until all write-backs have finished.
func (s *SavePlans) Wait() {
	s.pending.Wait()
}

func (s *SavePlans) writeBack(ctx context.Context, changes []engine.RolloverChange) {
	ctx = context.WithoutCancel(ctx)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		var g errgroup.Group
		for _, change := range changes {
			g.Go(func() error {
				updated, err := s.store.UpdateIf(ctx, change.After.ID,
					map[string]any{
						"execute_month": change.Before.ExecuteMonth,
						"executed":      change.Before.Executed,
						"execute_count": change.Before.ExecuteCount,
					},
					map[string]any{
						"executed":      change.After.Executed,
						"execute_count": change.After.ExecuteCount,
					},
				)
				if err != nil {
					rolloverWriteBacks.WithLabelValues("failure").Inc()
					log.Error().Str("id", change.After.ID.String()).Err(err).Msg("rollover write-back")
					return err
				}

				if !updated {
					rolloverWriteBacks.WithLabelValues("skipped").Inc()
					log.Debug().Str("id", change.After.ID.String()).Msg("rollover write-back skipped, plan changed since it was read")
					return nil
				}

				rolloverWriteBacks.WithLabelValues("success").Inc()
				return nil
			})
		}

		// Failures are logged above, the next read retries them
		_ = g.Wait()
	}()
}

// Get returns the save plan as seen in the current month.
// If it does not exist, the error wraps models.ErrResourceNotFound.
func (s *SavePlans) Get(ctx context.Context, id uuid.UUID) (models.SavePlan, error) {
	plan, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.SavePlan{}, err
	}

	return engine.Rollover(plan, s.clock.Now()), nil
}

// Add validates the input and stores the save plan.
//
// New plans start out not executed for the current month. When editing an
// existing plan, its execution state is kept.
func (s *SavePlans) Add(ctx context.Context, in SavePlanInput, sink Sink) (models.SavePlan, error) {
	if err := engine.ValidateAdd(in.Title, in.Amount, in.Category != ""); err != nil {
		reportValidationError(sink, err, engine.PlanKindSave)
		return models.SavePlan{}, err
	}

	today := s.clock.Now()
	plan := models.SavePlan{
		DefaultModel: models.DefaultModel{ID: in.ID},
		Title:        strings.TrimSpace(in.Title),
		Amount:       in.Amount,
		PlanDay:      in.PlanDay,
		Category:     in.Category,
		ExecuteMonth: int(today.Month()),
	}

	if in.ID != uuid.Nil {
		existing, err := s.store.GetByID(ctx, in.ID)
		if err == nil {
			existing = engine.Rollover(existing, today)
			plan.Executed = existing.Executed
			plan.ExecuteMonth = existing.ExecuteMonth
			plan.ExecuteCount = existing.ExecuteCount
		} else if !errors.Is(err, models.ErrResourceNotFound) {
			reportStoreError(sink, err)
			return models.SavePlan{}, err
		}
	}

	if err := s.store.Upsert(ctx, &plan); err != nil {
		reportStoreError(sink, err)
		return models.SavePlan{}, err
	}

	sink.OnSuccess()
	return plan, nil
}

// SetExecuted records whether the saving has been made in the current month.
// This is the only operation that moves a plan to a new execute month.
func (s *SavePlans) SetExecuted(ctx context.Context, id uuid.UUID, executed bool, sink Sink) (models.SavePlan, error) {
	plan, err := s.store.GetByID(ctx, id)
	if err != nil {
		reportStoreError(sink, err)
		return models.SavePlan{}, err
	}

	// Roll over first so that an execution in the previous month that has
	// not been written back yet is still counted
	today := s.clock.Now()
	plan = engine.ApplyExecuted(engine.Rollover(plan, today), executed, today)

	if err := s.store.Upsert(ctx, &plan); err != nil {
		reportStoreError(sink, err)
		return models.SavePlan{}, err
	}

	sink.OnSuccess()
	return plan, nil
}

// Delete deletes the save plan.
func (s *SavePlans) Delete(ctx context.Context, id uuid.UUID, sink Sink) error {
	return deleteRecord(ctx, s.store, id, sink)
}
