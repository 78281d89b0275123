package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/moneymate/backend/internal/controllers/v1"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/types"
	"github.com/moneymate/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestSpendingPlan(t *testing.T, p v1.SpendingPlanEditable, expectedStatus ...int) v1.SpendingPlanResponse {
	if p.Title == "" {
		p.Title = uuid.NewString()
	}

	if p.Amount == 0 {
		p.Amount = 100000
	}

	if p.Type == "" {
		p.Type = models.SpendingTypeLivingExpense
	}

	if p.PlanDate.IsZero() {
		p.PlanDate = types.NewDate(2024, 10, 5)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/spending-plans", []v1.SpendingPlanEditable{p})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var plan v1.SpendingPlanCreateResponse
	test.DecodeResponse(t, &r, &plan)

	if r.Code == http.StatusCreated {
		return plan.Data[0]
	}

	return v1.SpendingPlanResponse{}
}

func (suite *TestSuiteStandard) getSpendingPlans(t *testing.T, query string) v1.SpendingPlanOverview {
	r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/spending-plans"+query, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.SpendingPlanOverviewResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	return *response.Data
}

func boolPtr(b bool) *bool {
	return &b
}

// TestSpendingPlansOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestSpendingPlansOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No spending plan with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Spending plan exists", suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/spending-plans", tt.id)
			r := test.Request(t, suite.controller, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestSpendingPlansCreate() {
	p := suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{
		Title:    "Groceries",
		Type:     models.SpendingTypeLivingExpense,
		Category: models.CategoryType("FOOD"),
		Amount:   300000,
	})

	assert.Equal(suite.T(), "Groceries", p.Data.Title)
	assert.True(suite.T(), p.Data.IsApply, "New spending plans are applied by default")
	assert.Equal(suite.T(), "FOOD", p.Data.Category.Code())
	assert.Equal(suite.T(), "300,000 KRW", p.Data.AmountFormatted)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/consumptions?spendingPlan=%s", p.Data.ID), p.Data.Links.Consumptions)

	notApplied := suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{IsApply: boolPtr(false)})
	assert.False(suite.T(), notApplied.Data.IsApply)
	assert.False(suite.T(), notApplied.Data.Category.Selected())
}

func (suite *TestSuiteStandard) TestSpendingPlansCreateFails() {
	tests := []struct {
		name    string
		plan    v1.SpendingPlanEditable
		message string
	}{
		{"Empty title", v1.SpendingPlanEditable{Amount: 1, Type: models.SpendingTypeLivingExpense}, "Please enter a title for the spending plan"},
		{"No amount", v1.SpendingPlanEditable{Title: "Rent", Type: models.SpendingTypeLivingExpense}, "Please enter an amount for the spending plan"},
		{"No type", v1.SpendingPlanEditable{Title: "Rent", Amount: 1}, "Please select a type for the spending plan"},
		{"Type ALL", v1.SpendingPlanEditable{Title: "Rent", Amount: 1, Type: models.SpendingTypeAll}, models.ErrSpendingTypeInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/spending-plans", []v1.SpendingPlanEditable{tt.plan})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.SpendingPlanCreateResponse
			test.DecodeResponse(t, &r, &response)

			require.Len(t, response.Data, 1)
			assert.Contains(t, *response.Data[0].Error, tt.message)
		})
	}
}

func (suite *TestSuiteStandard) TestSpendingPlansOverview() {
	empty := suite.getSpendingPlans(suite.T(), "")
	assert.True(suite.T(), empty.Empty)
	assert.Equal(suite.T(), models.SpendingTypeAll, empty.Type)
	assert.Equal(suite.T(), engine.ViewModeList, empty.ViewMode)

	rent := suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{Title: "Rent", Amount: 500000, Type: models.SpendingTypeLivingExpense})
	_ = suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{Title: "Gym", Amount: 50000, Type: models.SpendingTypeLivingExpense, IsApply: boolPtr(false)})
	trip := suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{Title: "Trip", Amount: 200000, Type: models.SpendingTypeConsumptionPlan})

	_ = suite.createTestConsumption(suite.T(), v1.ConsumptionEditable{SpendingPlanID: trip.Data.ID, Amount: 30000})
	_ = suite.createTestConsumption(suite.T(), v1.ConsumptionEditable{SpendingPlanID: trip.Data.ID, Amount: 15000})

	tests := []struct {
		name    string
		query   string
		plans   int
		actuals int
	}{
		{"All", "", 3, 1},
		{"All explicitly", "?type=ALL", 3, 1},
		{"Living expenses", "?type=LIVING_EXPENSE", 2, 0},
		{"Consumption plans", "?type=CONSUMPTION_PLAN", 1, 1},
		{"Unknown type", "?type=LUXURY", 3, 1},
		{"Title", "?title=r*", 1, 0},
		{"Title on actuals", "?title=trip", 1, 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			overview := suite.getSpendingPlans(t, tt.query)

			assert.False(t, overview.Empty)
			assert.Len(t, overview.Plans, tt.plans)
			assert.Len(t, overview.Actuals, tt.actuals)

			// Totals never depend on the filter
			assert.Equal(t, int64(700000), overview.PredictTotal)
			assert.Equal(t, int64(750000), overview.Total)
			assert.Equal(t, int64(45000), overview.ConsumptionTotal)
			assert.Equal(t, int64(745000), overview.RealTotal)
			assert.Equal(t, "745,000 KRW", overview.RealTotalFormatted)
			assert.Equal(t, int64(550000), overview.TypeTotals[models.SpendingTypeLivingExpense])
			assert.Equal(t, int64(200000), overview.TypeTotals[models.SpendingTypeConsumptionPlan])
		})
	}

	overview := suite.getSpendingPlans(suite.T(), "?type=CONSUMPTION_PLAN")
	require.Len(suite.T(), overview.Actuals, 1)
	assert.Equal(suite.T(), trip.Data.ID, overview.Actuals[0].Plan.ID)
	assert.Len(suite.T(), overview.Actuals[0].Consumptions, 2)
	assert.Equal(suite.T(), int64(45000), overview.Actuals[0].Total)
	assert.Equal(suite.T(), "45,000 KRW", overview.Actuals[0].TotalFormatted)

	selected := suite.getSpendingPlans(suite.T(), fmt.Sprintf("?selected=%s", rent.Data.ID))
	assert.Equal(suite.T(), engine.ViewModeEdit, selected.ViewMode)
	for _, p := range selected.Plans {
		assert.Equal(suite.T(), p.ID == rent.Data.ID, p.Selected, p.Title)
	}
}

func (suite *TestSuiteStandard) TestSpendingPlansUpdate() {
	p := suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{
		Title:    "Groceries",
		Category: models.CategoryType("FOOD"),
		IsApply:  boolPtr(false),
	})

	r := test.Request(suite.T(), suite.controller, http.MethodPatch, p.Data.Links.Self, map[string]any{
		"amount": 420000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SpendingPlanResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), int64(420000), updated.Data.Amount)
	assert.False(suite.T(), updated.Data.IsApply, "IsApply must be kept if not in the body")
	assert.Equal(suite.T(), "FOOD", updated.Data.Category.Code())

	r = test.Request(suite.T(), suite.controller, http.MethodPatch, p.Data.Links.Self, `{ "isApply": true, "category": null }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.IsApply)
	assert.False(suite.T(), updated.Data.Category.Selected())

	r = test.Request(suite.T(), suite.controller, http.MethodPatch, p.Data.Links.Self, `{ "name": "Not a field" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestSpendingPlansDelete verifies that deleting a spending plan deletes its
// consumptions.
func (suite *TestSuiteStandard) TestSpendingPlansDelete() {
	p := suite.createTestSpendingPlan(suite.T(), v1.SpendingPlanEditable{Type: models.SpendingTypeConsumptionPlan})
	c := suite.createTestConsumption(suite.T(), v1.ConsumptionEditable{SpendingPlanID: p.Data.ID})

	r := test.Request(suite.T(), suite.controller, http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.controller, http.MethodGet, c.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), suite.controller, http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
