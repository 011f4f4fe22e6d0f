package v1_test

import (
	"net/http"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOverview() {
	token := suite.token(suite.T())
	other := suite.token(suite.T())

	suite.createBills(suite.T(), token)
	suite.createSpending(suite.T(), token)
	suite.createTestTransaction(suite.T(), other, v1.TransactionEditable{CounterpartyLabel: "Not mine", Date: date(31)})

	r := suite.request(suite.T(), http.MethodPut, "http://example.com/v1/balance", v1.BalanceEditable{Current: decimal.NewFromInt(4836), Currency: "GBP"}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.createTestPot(suite.T(), token, v1.PotEditable{Name: "Savings", Target: decimal.NewFromInt(2000), Total: decimal.NewFromInt(159)})
	suite.createTestPot(suite.T(), token, v1.PotEditable{Name: "Gift", Target: decimal.NewFromInt(60), Total: decimal.NewFromInt(40)})
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryEntertainment, Maximum: decimal.NewFromInt(100)})

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/overview", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.OverviewResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	data := response.Data

	assert.True(suite.T(), decimal.NewFromInt(4836).Equal(data.Balance.Current))
	assert.Equal(suite.T(), "GBP", data.Balance.Currency)

	assert.True(suite.T(), decimal.NewFromInt(199).Equal(data.PotsTotalSaved), "Total saved is %s", data.PotsTotalSaved)
	assert.Len(suite.T(), data.Pots, 2)

	require.Len(suite.T(), data.Budgets, 1)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(data.Budgets[0].Spent))

	// Only transactions in the Bills category count as bills
	assert.True(suite.T(), decimal.NewFromInt(-205).Equal(data.Bills.TotalBillsAmount), "Bills total is %s", data.Bills.TotalBillsAmount)
	assert.Equal(suite.T(), 1, data.Bills.PaidCount)

	labels := make([]string, 0)
	for _, t := range data.LatestTransactions {
		labels = append(labels, t.CounterpartyLabel)
	}
	assert.Equal(suite.T(), []string{"Nimbus Data Storage", "Serenity Spa & Wellness", "ByteWise", "Refund", "Pixel Playground"}, labels)
}

func (suite *TestSuiteStandard) TestOverviewEmpty() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/overview", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.OverviewResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.PotsTotalSaved.IsZero())
	assert.Len(suite.T(), response.Data.Pots, 0)
	assert.Len(suite.T(), response.Data.Budgets, 0)
	assert.Len(suite.T(), response.Data.LatestTransactions, 0)
	assert.Equal(suite.T(), models.DefaultCurrency, response.Data.Balance.Currency)
}

func (suite *TestSuiteStandard) TestOverviewDatabaseError() {
	token := suite.token(suite.T())
	suite.CloseDB()

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/overview", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
