package v1_test

import (
	"bytes"
	"net/http"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/export"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func (suite *TestSuiteStandard) TestExportJSON() {
	token := suite.token(suite.T())
	other := suite.token(suite.T())

	suite.createSpending(suite.T(), token)
	suite.createTestTransaction(suite.T(), other, v1.TransactionEditable{CounterpartyLabel: "Not mine"})
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{})
	suite.createTestPot(suite.T(), token, v1.PotEditable{Total: decimal.NewFromInt(12)})

	for _, path := range []string{"http://example.com/v1/export", "http://example.com/v1/export?format=json"} {
		r := suite.request(suite.T(), http.MethodGet, path, nil, token)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response v1.ExportResponse
		test.DecodeResponse(suite.T(), &r, &response)
		require.NotNil(suite.T(), response.Data)

		assert.Len(suite.T(), response.Data.Transactions, 6)
		assert.Len(suite.T(), response.Data.Budgets, 1)
		assert.Len(suite.T(), response.Data.Pots, 1)
		assert.True(suite.T(), now.Equal(response.CreationTime))
		for _, transaction := range response.Data.Transactions {
			assert.NotEqual(suite.T(), "Not mine", transaction.CounterpartyLabel)
		}
	}
}

func (suite *TestSuiteStandard) TestExportXLSX() {
	token := suite.token(suite.T())
	suite.createSpending(suite.T(), token)
	suite.createTestPot(suite.T(), token, v1.PotEditable{Name: "Holiday"})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/export?format=xlsx", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", r.Header().Get("Content-Type"))
	assert.Equal(suite.T(), `attachment; filename="finance-export-2024-08-20.xlsx"`, r.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(r.Body.Bytes()))
	require.Nil(suite.T(), err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetTransactions)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), rows, 7)

	rows, err = f.GetRows(export.SheetPots)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), "Holiday", rows[1][1])
}

func (suite *TestSuiteStandard) TestExportFails() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/export?format=csv", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Equal(suite.T(), "the format parameter must be one of json, xlsx", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(suite.T(), http.MethodOptions, "http://example.com/v1/export", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))

	suite.CloseDB()
	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/export", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestHealthz() {
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/healthz", nil, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodOptions, "http://example.com/healthz", nil, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))

	suite.CloseDB()
	r = suite.request(suite.T(), http.MethodGet, "http://example.com/healthz", nil, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
