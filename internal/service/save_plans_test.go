package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Scenario A: a plan executed in the current month is shown as executed.
func (suite *TestSuiteStandard) TestSavePlansListCurrentMonth() {
	p := suite.createSavePlan(models.SavePlan{Amount: 500000, Executed: true, ExecuteMonth: 10})

	l, err := suite.services.SavePlans.List(context.Background())
	suite.Require().Nil(err)
	suite.Require().Len(l.Plans, 1)

	suite.Assert().True(l.Plans[0].Executed)
	suite.Assert().Equal(int64(500000), l.ExecutedTotal())

	suite.services.Wait()
	suite.Assert().Equal(p.ExecuteCount, suite.storedSavePlan(p).ExecuteCount)
}

// Scenario B: a plan executed last month is rolled over, in the view and
// in the store.
func (suite *TestSuiteStandard) TestSavePlansListRollover() {
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 9, ExecuteCount: 2})

	l, err := suite.services.SavePlans.List(context.Background())
	suite.Require().Nil(err)
	suite.Require().Len(l.Plans, 1)

	suite.Assert().False(l.Plans[0].Executed)
	suite.Assert().Equal(3, l.Plans[0].ExecuteCount)
	suite.Assert().Equal(int64(0), l.ExecutedTotal())

	suite.services.Wait()
	stored := suite.storedSavePlan(p)
	suite.Assert().False(stored.Executed)
	suite.Assert().Equal(3, stored.ExecuteCount)
	suite.Assert().Equal(9, stored.ExecuteMonth, "reading must not advance the execute month")

	// Reading again does not count the execution twice
	l, err = suite.services.SavePlans.List(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(3, l.Plans[0].ExecuteCount)

	suite.services.Wait()
	suite.Assert().Equal(3, suite.storedSavePlan(p).ExecuteCount)
}

// TestSavePlansListWriteBackFails verifies that the rolled over view is
// delivered even if it cannot be persisted.
func (suite *TestSuiteStandard) TestSavePlansListWriteBackFails() {
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 9, ExecuteCount: 2})

	err := models.DB.Callback().Update().Before("gorm:update").Register("test:fail_update", func(db *gorm.DB) {
		_ = db.AddError(errors.New("disk full"))
	})
	suite.Require().Nil(err)

	l, err := suite.services.SavePlans.List(context.Background())
	suite.Require().Nil(err)
	suite.Assert().False(l.Plans[0].Executed)
	suite.Assert().Equal(3, l.Plans[0].ExecuteCount)

	suite.services.Wait()
	stored := suite.storedSavePlan(p)
	suite.Assert().True(stored.Executed)
	suite.Assert().Equal(2, stored.ExecuteCount)
}

func (suite *TestSuiteStandard) TestSavePlansListFlow() {
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := suite.services.SavePlans.ListFlow(ctx)
	suite.Require().Nil(err)
	suite.Assert().True(receive(suite.T(), ch).IsEmpty())

	_, err = suite.services.SavePlans.Add(ctx, service.SavePlanInput{
		Title:    "Pension",
		Amount:   300000,
		PlanDay:  1,
		Category: models.SaveCategoryPensionSaving,
	}, service.Discard)
	suite.Require().Nil(err)

	l := receive(suite.T(), ch)
	suite.Assert().Equal(int64(300000), l.Total())

	cancel()
	suite.Assert().Eventually(func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond, "flow must end when the context is done")
}

// TestSavePlansListFlowMonthChange verifies that every emission is rolled
// over with the time it is computed at.
func (suite *TestSuiteStandard) TestSavePlansListFlowMonthChange() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 10, ExecuteCount: 0})

	ch, err := suite.services.SavePlans.ListFlow(ctx)
	suite.Require().Nil(err)
	suite.Assert().True(receive(suite.T(), ch).Plans[0].Executed)

	suite.clock.AddMonths(1)

	// Any write triggers a new emission
	_, err = suite.services.SavePlans.Add(ctx, service.SavePlanInput{Title: "Other", Amount: 1, PlanDay: 1, Category: models.SaveCategoryOther}, service.Discard)
	suite.Require().Nil(err)

	l := receive(suite.T(), ch)
	for _, v := range l.Plans {
		if v.ID == p.ID {
			suite.Assert().False(v.Executed)
			suite.Assert().Equal(1, v.ExecuteCount)
		}
	}
}

// holdWriteBack blocks the first update of a save plan until release is
// called. started is closed once the update is waiting.
func (suite *TestSuiteStandard) holdWriteBack() (started <-chan struct{}, release func()) {
	waiting := make(chan struct{})
	released := make(chan struct{})

	var held atomic.Bool
	err := models.DB.Callback().Update().Before("gorm:begin_transaction").Register("test:hold_update", func(db *gorm.DB) {
		if held.CompareAndSwap(false, true) {
			close(waiting)
			<-released
		}
	})
	suite.Require().Nil(err)

	return waiting, func() { close(released) }
}

// wait waits for ch to be closed.
func wait(t *testing.T, ch <-chan struct{}) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for write-back")
	}
}

// TestSavePlansWriteBackAfterDelete verifies that a rollover write-back
// does not bring back a plan deleted after it was read.
func (suite *TestSuiteStandard) TestSavePlansWriteBackAfterDelete() {
	ctx := context.Background()
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 9, ExecuteCount: 2})
	started, release := suite.holdWriteBack()

	_, err := suite.services.SavePlans.List(ctx)
	suite.Require().Nil(err)
	wait(suite.T(), started)

	suite.Require().Nil(suite.services.SavePlans.Delete(ctx, p.ID, service.Discard))

	release()
	suite.services.Wait()

	var count int64
	suite.Require().Nil(models.DB.Model(&models.SavePlan{}).Where("id = ?", p.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "deleted plan must stay deleted")
}

// TestSavePlansWriteBackAfterSetExecuted verifies that a rollover
// write-back does not overwrite an execution recorded after the read.
func (suite *TestSuiteStandard) TestSavePlansWriteBackAfterSetExecuted() {
	ctx := context.Background()
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 9, ExecuteCount: 2})
	started, release := suite.holdWriteBack()

	_, err := suite.services.SavePlans.List(ctx)
	suite.Require().Nil(err)
	wait(suite.T(), started)

	executed, err := suite.services.SavePlans.SetExecuted(ctx, p.ID, true, service.Discard)
	suite.Require().Nil(err)
	suite.Assert().True(executed.Executed)
	suite.Assert().Equal(10, executed.ExecuteMonth)
	suite.Assert().Equal(3, executed.ExecuteCount)

	release()
	suite.services.Wait()

	stored := suite.storedSavePlan(p)
	suite.Assert().True(stored.Executed)
	suite.Assert().Equal(10, stored.ExecuteMonth, "the execute month must never move back")
	suite.Assert().Equal(3, stored.ExecuteCount)

	// The plan is current, the next read keeps the execution
	l, err := suite.services.SavePlans.List(ctx)
	suite.Require().Nil(err)
	suite.Assert().True(l.Plans[0].Executed)
	suite.Assert().Equal(int64(10000), l.ExecutedTotal())
}

// Scenario C: an add with an empty title fails and does not touch the store.
func (suite *TestSuiteStandard) TestSavePlansAddValidation() {
	tests := []struct {
		name  string
		input service.SavePlanInput
		err   error
		kind  engine.ErrorKind
		msg   string
	}{
		{"Empty title", service.SavePlanInput{Title: "", Amount: 1000, PlanDay: 1, Category: models.SaveCategoryDeposit}, engine.ErrEmptyTitle, engine.ErrorKindEmptyTitle, "Please enter a title for the savings plan"},
		{"Zero amount", service.SavePlanInput{Title: "Car", Amount: 0, PlanDay: 1, Category: models.SaveCategoryDeposit}, engine.ErrNonPositiveAmount, engine.ErrorKindNonPositiveAmount, "Please enter an amount for the savings plan"},
		{"No category", service.SavePlanInput{Title: "Car", Amount: 1000, PlanDay: 1}, engine.ErrMissingSelection, engine.ErrorKindMissingSelection, "Please select a category for the savings plan"},
		{"Unknown category", service.SavePlanInput{Title: "Car", Amount: 1000, PlanDay: 1, Category: "LOTTERY"}, models.ErrSaveCategoryInvalid, engine.ErrorKindInvalidField, models.ErrSaveCategoryInvalid.Error()},
		{"Plan day out of range", service.SavePlanInput{Title: "Car", Amount: 1000, PlanDay: 0, Category: models.SaveCategoryDeposit}, models.ErrPlanDayInvalid, engine.ErrorKindInvalidField, models.ErrPlanDayInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var result service.Result
			_, err := suite.services.SavePlans.Add(context.Background(), tt.input, &result)

			assert.ErrorIs(t, err, tt.err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.kind, result.Kind)
			assert.Equal(t, tt.msg, result.Message)

			var count int64
			models.DB.Model(&models.SavePlan{}).Count(&count)
			assert.Equal(t, int64(0), count)
		})
	}
}

func (suite *TestSuiteStandard) TestSavePlansAdd() {
	var result service.Result
	p, err := suite.services.SavePlans.Add(context.Background(), service.SavePlanInput{
		Title:    "  Index fund ",
		Amount:   500000,
		PlanDay:  25,
		Category: models.SaveCategoryInvestment,
	}, &result)
	suite.Require().Nil(err)

	suite.Assert().True(result.Success)
	suite.Assert().NotEqual(uuid.Nil, p.ID)

	stored := suite.storedSavePlan(p)
	suite.Assert().Equal("Index fund", stored.Title)
	suite.Assert().False(stored.Executed)
	suite.Assert().Equal(10, stored.ExecuteMonth)
	suite.Assert().Equal(0, stored.ExecuteCount)
}

func (suite *TestSuiteStandard) TestSavePlansEditKeepsExecution() {
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 10, ExecuteCount: 4})

	edited, err := suite.services.SavePlans.Add(context.Background(), service.SavePlanInput{
		ID:       p.ID,
		Title:    "Renamed",
		Amount:   20000,
		PlanDay:  3,
		Category: models.SaveCategoryChecking,
	}, service.Discard)
	suite.Require().Nil(err)

	suite.Assert().Equal(p.ID, edited.ID)

	stored := suite.storedSavePlan(p)
	suite.Assert().Equal("Renamed", stored.Title)
	suite.Assert().Equal(int64(20000), stored.Amount)
	suite.Assert().True(stored.Executed)
	suite.Assert().Equal(4, stored.ExecuteCount)

	var count int64
	models.DB.Model(&models.SavePlan{}).Count(&count)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestSavePlansSetExecuted() {
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: false, ExecuteMonth: 10})

	var result service.Result
	updated, err := suite.services.SavePlans.SetExecuted(context.Background(), p.ID, true, &result)
	suite.Require().Nil(err)
	suite.Assert().True(updated.Executed)
	suite.Assert().True(result.Success)

	stored := suite.storedSavePlan(p)
	suite.Assert().True(stored.Executed)
	suite.Assert().Equal(10, stored.ExecuteMonth)
}

// TestSavePlansSetExecutedStale verifies that executing a plan in a new
// month counts the execution of the previous month.
func (suite *TestSuiteStandard) TestSavePlansSetExecutedStale() {
	p := suite.createSavePlan(models.SavePlan{Amount: 10000, Executed: true, ExecuteMonth: 9, ExecuteCount: 1})

	_, err := suite.services.SavePlans.SetExecuted(context.Background(), p.ID, true, service.Discard)
	suite.Require().Nil(err)

	stored := suite.storedSavePlan(p)
	suite.Assert().True(stored.Executed)
	suite.Assert().Equal(10, stored.ExecuteMonth)
	suite.Assert().Equal(2, stored.ExecuteCount)

	// The plan is current now, reading it does not change it
	l, err := suite.services.SavePlans.List(context.Background())
	suite.Require().Nil(err)
	suite.Assert().True(l.Plans[0].Executed)
	suite.Assert().Equal(2, l.Plans[0].ExecuteCount)
}

func (suite *TestSuiteStandard) TestSavePlansSetExecutedNotFound() {
	var result service.Result
	_, err := suite.services.SavePlans.SetExecuted(context.Background(), uuid.New(), true, &result)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().False(result.Success)
	suite.Assert().Equal(engine.ErrorKindNotFound, result.Kind)
}

func (suite *TestSuiteStandard) TestSavePlansGet() {
	p := suite.createSavePlan(models.SavePlan{Executed: true, ExecuteMonth: 9, ExecuteCount: 1})

	got, err := suite.services.SavePlans.Get(context.Background(), p.ID)
	suite.Require().Nil(err)
	suite.Assert().False(got.Executed, "Get returns the plan as seen this month")
	suite.Assert().Equal(2, got.ExecuteCount)

	_, err = suite.services.SavePlans.Get(context.Background(), uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSavePlansDelete() {
	p := suite.createSavePlan(models.SavePlan{})

	var result service.Result
	suite.Require().Nil(suite.services.SavePlans.Delete(context.Background(), p.ID, &result))
	suite.Assert().True(result.Success)

	err := suite.services.SavePlans.Delete(context.Background(), p.ID, &result)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal(engine.ErrorKindNotFound, result.Kind)
}

func (suite *TestSuiteStandard) TestSavePlansStorageError() {
	suite.CloseDB()

	var result service.Result
	_, err := suite.services.SavePlans.Add(context.Background(), service.SavePlanInput{
		Title:    "Car",
		Amount:   1000,
		PlanDay:  1,
		Category: models.SaveCategoryDeposit,
	}, &result)

	suite.Assert().ErrorIs(err, models.ErrGeneral)
	suite.Assert().Equal(engine.ErrorKindStorage, result.Kind)

	_, err = suite.services.SavePlans.List(context.Background())
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
