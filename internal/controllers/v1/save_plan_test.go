package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/moneymate/backend/internal/controllers/v1"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestSavePlan(t *testing.T, p v1.SavePlanEditable, expectedStatus ...int) v1.SavePlanResponse {
	if p.Title == "" {
		p.Title = uuid.NewString()
	}

	if p.Amount == 0 {
		p.Amount = 100000
	}

	if p.PlanDay == 0 {
		p.PlanDay = 25
	}

	if p.Category == "" {
		p.Category = models.SaveCategoryDeposit
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.SavePlanEditable{p}

	r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/save-plans", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var plan v1.SavePlanCreateResponse
	test.DecodeResponse(t, &r, &plan)

	if r.Code == http.StatusCreated {
		return plan.Data[0]
	}

	return v1.SavePlanResponse{}
}

func (suite *TestSuiteStandard) getSavePlans(t *testing.T, query string) v1.SavePlanList {
	r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/save-plans"+query, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.SavePlanListResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) setSavePlanExecuted(t *testing.T, id uuid.UUID, executed bool, expectedStatus ...int) v1.SavePlanResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, suite.controller, http.MethodPut, fmt.Sprintf("http://example.com/v1/save-plans/%s/executed", id), map[string]any{"executed": executed})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.SavePlanResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

// TestSavePlansDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestSavePlansDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				suite.createTestSavePlan(t, v1.SavePlanEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/save-plans", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.SavePlanListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestSavePlansOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestSavePlansOptions() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})

	tests := []struct {
		name   string
		path   string
		status int    // Expected HTTP status code
		allow  string // Expected allow header
	}{
		{"No save plan with this ID", uuid.New().String(), http.StatusNotFound, ""},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest, ""},
		{"Save plan exists", p.Data.ID.String(), http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Executed, no save plan", fmt.Sprintf("%s/executed", uuid.New()), http.StatusNotFound, ""},
		{"Executed", fmt.Sprintf("%s/executed", p.Data.ID), http.StatusNoContent, "OPTIONS, PUT"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/save-plans", tt.path)
			r := test.Request(t, suite.controller, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}

// TestSavePlansGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestSavePlansGetSingle() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing save plan", p.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No save plan with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"PATCH No save plan with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No save plan with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, tt.method, fmt.Sprintf("http://example.com/v1/save-plans/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestSavePlansCreate() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{
		Title:    "  Index fund ",
		Amount:   500000,
		PlanDay:  25,
		Category: models.SaveCategoryInvestment,
	})

	assert.Equal(suite.T(), "Index fund", p.Data.Title)
	assert.Equal(suite.T(), "500,000 KRW", p.Data.AmountFormatted)
	assert.Equal(suite.T(), engine.SaveStatePlanned, p.Data.State)
	assert.False(suite.T(), p.Data.Executed)
	assert.Equal(suite.T(), int(october.Month()), p.Data.ExecuteMonth)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/save-plans/%s", p.Data.ID), p.Data.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/save-plans/%s/executed", p.Data.ID), p.Data.Links.Executed)
}

func (suite *TestSuiteStandard) TestSavePlansCreateFails() {
	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"Broken body", `[{ "title": 2 }]`, http.StatusBadRequest, ""},
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Empty title", []v1.SavePlanEditable{{Title: " ", Amount: 1, PlanDay: 1, Category: models.SaveCategoryDeposit}}, http.StatusBadRequest, "Please enter a title for the savings plan"},
		{"No amount", []v1.SavePlanEditable{{Title: "Fund", PlanDay: 1, Category: models.SaveCategoryDeposit}}, http.StatusBadRequest, "Please enter an amount for the savings plan"},
		{"No category", []v1.SavePlanEditable{{Title: "Fund", Amount: 1, PlanDay: 1}}, http.StatusBadRequest, "Please select a category for the savings plan"},
		{"Unknown category", []v1.SavePlanEditable{{Title: "Fund", Amount: 1, PlanDay: 1, Category: "LOTTERY"}}, http.StatusBadRequest, models.ErrSaveCategoryInvalid.Error()},
		{"Invalid plan day", []v1.SavePlanEditable{{Title: "Fund", Amount: 1, PlanDay: 32, Category: models.SaveCategoryDeposit}}, http.StatusBadRequest, models.ErrPlanDayInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/save-plans", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.message == "" {
				return
			}

			var response v1.SavePlanCreateResponse
			test.DecodeResponse(t, &r, &response)

			if response.Error != nil {
				assert.Contains(t, *response.Error, tt.message)
				return
			}

			require.Len(t, response.Data, 1)
			require.NotNil(t, response.Data[0].Error)
			assert.Contains(t, *response.Data[0].Error, tt.message)
		})
	}
}

// TestSavePlansCreatePartial verifies that valid plans are created even if
// others in the same request are rejected.
func (suite *TestSuiteStandard) TestSavePlansCreatePartial() {
	body := []v1.SavePlanEditable{
		{Title: "Fund", Amount: 1000, PlanDay: 1, Category: models.SaveCategoryInvestment},
		{Title: "", Amount: 1000, PlanDay: 1, Category: models.SaveCategoryInvestment},
	}

	r := test.Request(suite.T(), suite.controller, http.MethodPost, "http://example.com/v1/save-plans", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SavePlanCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Fund", response.Data[0].Data.Title)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.Nil(suite.T(), response.Data[1].Data)

	list := suite.getSavePlans(suite.T(), "")
	assert.Len(suite.T(), list.Plans, 1)
}

// TestSavePlansCreateDefaultPlanDay verifies that plans without a plan day
// are planned for the first day of the month.
func (suite *TestSuiteStandard) TestSavePlansCreateDefaultPlanDay() {
	r := test.Request(suite.T(), suite.controller, http.MethodPost, "http://example.com/v1/save-plans", `[{ "title": "Fund", "amount": 1000, "category": "DEPOSIT" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SavePlanCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), 1, response.Data[0].Data.PlanDay)
}

func (suite *TestSuiteStandard) TestSavePlansList() {
	list := suite.getSavePlans(suite.T(), "")
	assert.True(suite.T(), list.Empty)
	assert.Empty(suite.T(), list.Plans)
	assert.Equal(suite.T(), "0 KRW", list.TotalFormatted)

	fund := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Index fund", Amount: 500000, Category: models.SaveCategoryInvestment})
	_ = suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Bond fund", Amount: 200000, Category: models.SaveCategoryInvestment})
	_ = suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Deposit", Amount: 100000, Category: models.SaveCategoryDeposit})

	suite.setSavePlanExecuted(suite.T(), fund.Data.ID, true)

	list = suite.getSavePlans(suite.T(), "")
	assert.False(suite.T(), list.Empty)
	assert.Len(suite.T(), list.Plans, 3)
	assert.Equal(suite.T(), int64(800000), list.Total)
	assert.Equal(suite.T(), int64(500000), list.ExecutedTotal)
	assert.Equal(suite.T(), "800,000 KRW", list.TotalFormatted)
	assert.Equal(suite.T(), "500,000 KRW", list.ExecutedTotalFormatted)

	categories := make(map[models.SaveCategory]v1.SaveCategoryTotal)
	for _, c := range list.Categories {
		categories[c.Category] = c
	}

	assert.Equal(suite.T(), 2, categories[models.SaveCategoryInvestment].Count)
	assert.Equal(suite.T(), int64(700000), categories[models.SaveCategoryInvestment].Total)
	assert.Equal(suite.T(), int64(500000), categories[models.SaveCategoryInvestment].ExecutedTotal)
	assert.Equal(suite.T(), int64(100000), categories[models.SaveCategoryDeposit].Total)
}

// TestSavePlansFilter verifies that filters narrow down the plans, but never
// the totals.
func (suite *TestSuiteStandard) TestSavePlansFilter() {
	fund := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Index fund", Amount: 500000, Category: models.SaveCategoryInvestment})
	_ = suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Bond fund", Amount: 200000, Category: models.SaveCategoryInvestment})
	_ = suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Deposit", Amount: 100000, Category: models.SaveCategoryDeposit})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 3},
		{"Title glob", "?title=*fund", 2},
		{"Title case insensitive", "?title=INDEX*", 1},
		{"Title no match", "?title=Lottery", 0},
		{"Category", fmt.Sprintf("?category=%s", models.SaveCategoryDeposit), 1},
		{"Title and category", fmt.Sprintf("?title=Bond*&category=%s", models.SaveCategoryInvestment), 1},
		{"Selected", fmt.Sprintf("?selected=%s", fund.Data.ID), 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			list := suite.getSavePlans(t, tt.query)
			assert.Len(t, list.Plans, tt.len)
			assert.Equal(t, int64(800000), list.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestSavePlansSelected() {
	fund := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})
	_ = suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})

	list := suite.getSavePlans(suite.T(), fmt.Sprintf("?selected=%s", fund.Data.ID))

	selected := 0
	for _, p := range list.Plans {
		if p.Selected {
			selected++
			assert.Equal(suite.T(), fund.Data.ID, p.ID)
		}
	}
	assert.Equal(suite.T(), 1, selected)

	r := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/v1/save-plans?selected=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSavePlansUpdate() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Title: "Fund", Amount: 1000, Category: models.SaveCategoryInvestment})
	suite.setSavePlanExecuted(suite.T(), p.Data.ID, true)

	path := fmt.Sprintf("http://example.com/v1/save-plans/%s", p.Data.ID)

	r := test.Request(suite.T(), suite.controller, http.MethodPatch, path, map[string]any{
		"title":  "Index fund",
		"amount": 2000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SavePlanResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Index fund", updated.Data.Title)
	assert.Equal(suite.T(), int64(2000), updated.Data.Amount)
	assert.Equal(suite.T(), models.SaveCategoryInvestment, updated.Data.Category, "Fields not in the body must keep their value")
	assert.True(suite.T(), updated.Data.Executed, "Editing must keep the execution state")
	assert.Equal(suite.T(), int(october.Month()), updated.Data.ExecuteMonth)
}

func (suite *TestSuiteStandard) TestSavePlansUpdateFails() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})
	path := fmt.Sprintf("http://example.com/v1/save-plans/%s", p.Data.ID)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"Empty body", "", "the request body must not be empty"},
		{"Invalid body", `{ "title": 2 }`, ""},
		{"No editable fields", `{ "executed": true }`, "the request body does not contain any field that can be updated"},
		{"Empty title", map[string]any{"title": ""}, "Please enter a title for the savings plan"},
		{"Negative amount", map[string]any{"amount": -5}, "Please enter an amount for the savings plan"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPatch, path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			if tt.message == "" {
				return
			}

			var response v1.SavePlanResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.message, *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestSavePlansExecuted() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})

	executed := suite.setSavePlanExecuted(suite.T(), p.Data.ID, true)
	assert.True(suite.T(), executed.Data.Executed)
	assert.Equal(suite.T(), engine.SaveStateExecuted, executed.Data.State)
	assert.Equal(suite.T(), 0, executed.Data.ExecuteCount, "Executions are counted when the month is over")

	planned := suite.setSavePlanExecuted(suite.T(), p.Data.ID, false)
	assert.False(suite.T(), planned.Data.Executed)
	assert.Equal(suite.T(), engine.SaveStatePlanned, planned.Data.State)

	_ = suite.setSavePlanExecuted(suite.T(), uuid.New(), true, http.StatusNotFound)

	r := test.Request(suite.T(), suite.controller, http.MethodPut, fmt.Sprintf("http://example.com/v1/save-plans/%s/executed", p.Data.ID), `{}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestSavePlansRollover verifies that a plan executed in an earlier month is
// shown as planned in the current month.
func (suite *TestSuiteStandard) TestSavePlansRollover() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{Amount: 300000})
	suite.setSavePlanExecuted(suite.T(), p.Data.ID, true)

	suite.clock.AddMonths(1)

	list := suite.getSavePlans(suite.T(), "")
	require.Len(suite.T(), list.Plans, 1)
	assert.False(suite.T(), list.Plans[0].Executed)
	assert.Equal(suite.T(), engine.SaveStatePlanned, list.Plans[0].State)
	assert.Equal(suite.T(), 1, list.Plans[0].ExecuteCount)
	assert.Equal(suite.T(), int64(0), list.ExecutedTotal)
	assert.Equal(suite.T(), int64(300000), list.Total)

	r := test.Request(suite.T(), suite.controller, http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var single v1.SavePlanResponse
	test.DecodeResponse(suite.T(), &r, &single)
	assert.Equal(suite.T(), engine.SaveStatePlanned, single.Data.State)

	// Executing in the new month moves the plan to that month
	suite.services.Wait()
	executed := suite.setSavePlanExecuted(suite.T(), p.Data.ID, true)
	assert.Equal(suite.T(), int(october.Month())+1, executed.Data.ExecuteMonth)
	assert.Equal(suite.T(), 1, executed.Data.ExecuteCount)
}

func (suite *TestSuiteStandard) TestSavePlansDelete() {
	p := suite.createTestSavePlan(suite.T(), v1.SavePlanEditable{})

	r := test.Request(suite.T(), suite.controller, http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.controller, http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
