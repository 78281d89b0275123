package v1_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "github.com/moneymate/backend/internal/controllers/v1"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventReader reads server-sent events from a response body.
type eventReader struct {
	scanner *bufio.Scanner
}

// next returns the name and data of the next event.
func (r eventReader) next(t *testing.T) (string, []byte) {
	var event string
	for r.scanner.Scan() {
		line := r.scanner.Text()

		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			return event, []byte(strings.TrimPrefix(line, "data:"))
		}
	}

	require.FailNow(t, "stream ended before the next event", r.scanner.Err())
	return "", nil
}

// openStream starts a server for the API and subscribes to the stream at path.
// The returned function closes the stream and the server.
func (suite *TestSuiteStandard) openStream(t *testing.T, path string) (*httptest.Server, eventReader, func()) {
	handler, teardown := test.Router(t, suite.controller)
	server := httptest.NewServer(handler)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+path, nil)
	require.Nil(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	closeStream := func() {
		cancel()
		resp.Body.Close()
		server.Close()
		teardown()
	}

	return server, eventReader{scanner: bufio.NewScanner(resp.Body)}, closeStream
}

func post(t *testing.T, url string, body any) {
	b, err := json.Marshal(body)
	require.Nil(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.Nil(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (suite *TestSuiteStandard) TestStreamSavePlans() {
	t := suite.T()
	server, events, closeStream := suite.openStream(t, "/v1/save-plans/stream")
	defer closeStream()

	event, data := events.next(t)
	assert.Equal(t, "save-plans", event)

	var list v1.SavePlanList
	require.Nil(t, json.Unmarshal(data, &list))
	assert.True(t, list.Empty)

	post(t, server.URL+"/v1/save-plans", []v1.SavePlanEditable{
		{Title: "Index fund", Amount: 500000, PlanDay: 25, Category: models.SaveCategoryInvestment},
	})

	_, data = events.next(t)
	require.Nil(t, json.Unmarshal(data, &list))
	require.Len(t, list.Plans, 1)
	assert.Equal(t, "Index fund", list.Plans[0].Title)
	assert.Equal(t, "500,000 KRW", list.TotalFormatted)
	assert.Equal(t, "http://example.com/v1/save-plans/"+list.Plans[0].ID.String(), list.Plans[0].Links.Self)
}

// TestStreamSpendingPlans verifies that recording a consumption updates the
// spending plan stream.
func (suite *TestSuiteStandard) TestStreamSpendingPlans() {
	t := suite.T()
	trip := suite.createTestSpendingPlan(t, v1.SpendingPlanEditable{Title: "Trip", Amount: 200000, Type: models.SpendingTypeConsumptionPlan})

	server, events, closeStream := suite.openStream(t, "/v1/spending-plans/stream?type=CONSUMPTION_PLAN")
	defer closeStream()

	event, data := events.next(t)
	assert.Equal(t, "spending-plans", event)

	var overview v1.SpendingPlanOverview
	require.Nil(t, json.Unmarshal(data, &overview))
	assert.Equal(t, models.SpendingTypeConsumptionPlan, overview.Type)
	assert.Len(t, overview.Plans, 1)
	assert.Empty(t, overview.Actuals)

	post(t, server.URL+"/v1/consumptions", []v1.ConsumptionEditable{
		{SpendingPlanID: trip.Data.ID, Title: "Train", Amount: 30000},
	})

	_, data = events.next(t)
	require.Nil(t, json.Unmarshal(data, &overview))
	require.Len(t, overview.Actuals, 1)
	assert.Equal(t, int64(30000), overview.ConsumptionTotal)
	assert.Equal(t, int64(230000), overview.RealTotal)
}

func (suite *TestSuiteStandard) TestStreamIncomes() {
	t := suite.T()
	server, events, closeStream := suite.openStream(t, "/v1/incomes/stream")
	defer closeStream()

	event, _ := events.next(t)
	assert.Equal(t, "incomes", event)

	post(t, server.URL+"/v1/incomes", []v1.IncomeEditable{
		{Title: "Salary", Amount: 3000000, Type: models.IncomeTypeSalary},
	})

	_, data := events.next(t)

	var list v1.IncomeList
	require.Nil(t, json.Unmarshal(data, &list))
	require.Len(t, list.Incomes, 1)
	assert.Equal(t, int64(3000000), list.Total)
}

func (suite *TestSuiteStandard) TestStreamInvalidQuery() {
	r := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/v1/save-plans/stream?selected=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
