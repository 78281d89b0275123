package v1_test

import (
	"net/http"
	"testing"

	"github.com/moneymate/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1/save-plans", "OPTIONS, GET, POST"},
		{"http://example.com/v1/spending-plans", "OPTIONS, GET, POST"},
		{"http://example.com/v1/consumptions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/incomes", "OPTIONS, GET, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, suite.controller, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}
