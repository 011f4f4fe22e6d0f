package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/summary"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createBills creates one bill for every status relative to now
// (2024-08-20) and a recurring transaction outside of the Bills category.
func (suite *TestSuiteStandard) createBills(t *testing.T, token string) {
	for _, c := range []v1.TransactionEditable{
		{CounterpartyLabel: "Spark Electric Solutions", Category: models.CategoryBills, Date: date(2), Amount: decimal.NewFromInt(-100), IsRecurring: true},
		{CounterpartyLabel: "Serenity Spa & Wellness", Category: models.CategoryBills, Date: date(25), Amount: decimal.NewFromInt(-50)},
		{CounterpartyLabel: "Aqua Flow Utilities", Category: models.CategoryBills, Date: date(10), Amount: decimal.NewFromInt(-20)},
		{CounterpartyLabel: "Nimbus Data Storage", Category: models.CategoryBills, Date: date(28), Amount: decimal.NewFromInt(-30), IsRecurring: true},
		{CounterpartyLabel: "ByteWise", Category: models.CategoryBills, Date: time.Date(2024, 8, 20, 9, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-5)},
		{CounterpartyLabel: "EliteFit Gym", Category: models.CategoryLifestyle, Date: date(11), Amount: decimal.NewFromInt(-40), IsRecurring: true},
	} {
		suite.createTestTransaction(t, token, c)
	}
}

func (suite *TestSuiteStandard) TestBills() {
	token := suite.token(suite.T())
	suite.createBills(suite.T(), token)

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/bills", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	s := response.Data.Summary
	assert.True(suite.T(), decimal.NewFromInt(-205).Equal(s.TotalBillsAmount), "Total is %s", s.TotalBillsAmount)
	assert.Equal(suite.T(), 1, s.PaidCount)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(s.PaidAmount), "Paid amount is %s", s.PaidAmount)
	assert.Equal(suite.T(), 1, s.UpcomingCount)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(s.UpcomingAmount), "Upcoming amount is %s", s.UpcomingAmount)
	assert.Equal(suite.T(), 1, s.DueSoonCount)
	assert.True(suite.T(), decimal.NewFromInt(-20).Equal(s.DueSoonAmount), "Due soon amount is %s", s.DueSoonAmount)

	type bill struct {
		label  string
		status summary.Status
	}

	bills := make([]bill, 0, len(response.Data.Bills))
	for _, b := range response.Data.Bills {
		bills = append(bills, bill{b.CounterpartyLabel, b.Status})
	}

	assert.Equal(suite.T(), []bill{
		{"Nimbus Data Storage", summary.StatusNone},
		{"Serenity Spa & Wellness", summary.StatusUpcoming},
		{"ByteWise", summary.StatusNone},
		{"Aqua Flow Utilities", summary.StatusDueSoon},
		{"Spark Electric Solutions", summary.StatusPaid},
	}, bills)
}

func (suite *TestSuiteStandard) TestBillsQuery() {
	token := suite.token(suite.T())
	suite.createBills(suite.T(), token)

	tests := []struct {
		name     string
		query    string
		labels   []string
		total    string
		paid     int
		upcoming int
		dueSoon  int
	}{
		{"Limit only applies to the list", "limit=2", []string{"Nimbus Data Storage", "Serenity Spa & Wellness"}, "-205", 1, 1, 1},
		{"Offset", "offset=3&limit=1", []string{"Aqua Flow Utilities"}, "-205", 1, 1, 1},
		{"Sort", "sort=a-z&limit=2", []string{"Aqua Flow Utilities", "ByteWise"}, "-205", 1, 1, 1},
		{"Search", "search=spa", []string{"Serenity Spa & Wellness", "Spark Electric Solutions"}, "-150", 1, 1, 0},
		{"Recurring", "recurring=true", []string{"Nimbus Data Storage", "Spark Electric Solutions"}, "-130", 1, 0, 0},
		{"Other category", "category=lifestyle", []string{"EliteFit Gym"}, "-40", 1, 0, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/bills?%s", tt.query), nil, token)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BillsResponse
			test.DecodeResponse(t, &r, &response)

			labels := make([]string, 0)
			for _, b := range response.Data.Bills {
				labels = append(labels, b.CounterpartyLabel)
			}

			assert.Equal(t, tt.labels, labels)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(response.Data.Summary.TotalBillsAmount), "Total is %s", response.Data.Summary.TotalBillsAmount)
			assert.Equal(t, tt.paid, response.Data.Summary.PaidCount)
			assert.Equal(t, tt.upcoming, response.Data.Summary.UpcomingCount)
			assert.Equal(t, tt.dueSoon, response.Data.Summary.DueSoonCount)
		})
	}
}

func (suite *TestSuiteStandard) TestBillsEmpty() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/bills", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data.Bills, 0)
	assert.True(suite.T(), response.Data.Summary.TotalBillsAmount.IsZero())
	assert.Equal(suite.T(), 0, response.Data.Summary.PaidCount)
}

func (suite *TestSuiteStandard) TestBillsFails() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/bills?sort=cheapest", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/bills", nil, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}
