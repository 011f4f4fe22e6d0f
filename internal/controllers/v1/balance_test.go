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

func (suite *TestSuiteStandard) TestBalanceDefault() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/balance", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Current.IsZero())
	assert.True(suite.T(), response.Data.Income.IsZero())
	assert.True(suite.T(), response.Data.Expenses.IsZero())
	assert.Equal(suite.T(), models.DefaultCurrency, response.Data.Currency)
	assert.Nil(suite.T(), response.Data.UpdatedAt)
}

func (suite *TestSuiteStandard) TestBalanceSet() {
	token := suite.token(suite.T())
	other := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodPut, "http://example.com/v1/balance", v1.BalanceEditable{
		Current:  decimal.NewFromInt(4836),
		Income:   decimal.RequireFromString("3814.25"),
		Expenses: decimal.RequireFromString("1700.50"),
		Currency: "eur",
	}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "EUR", response.Data.Currency)
	assert.NotNil(suite.T(), response.Data.UpdatedAt)

	// A second PUT replaces the balance
	r = suite.request(suite.T(), http.MethodPut, "http://example.com/v1/balance", v1.BalanceEditable{Current: decimal.NewFromInt(100)}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/balance", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.UpdatedAt)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(response.Data.Current))
	assert.True(suite.T(), response.Data.Income.IsZero())
	assert.Equal(suite.T(), models.DefaultCurrency, response.Data.Currency)

	// Other users are not affected
	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/balance", nil, other)
	var untouched v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &untouched)
	assert.True(suite.T(), untouched.Data.Current.IsZero())
	assert.Nil(suite.T(), untouched.Data.UpdatedAt)
}

func (suite *TestSuiteStandard) TestBalanceSetFails() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodPut, "http://example.com/v1/balance", map[string]any{"current": "10", "currency": "Euro"}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrCurrencyInvalid.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(suite.T(), http.MethodPut, "http://example.com/v1/balance", "", token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.T(), http.MethodOptions, "http://example.com/v1/balance", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PUT", r.Header().Get("allow"))
}
