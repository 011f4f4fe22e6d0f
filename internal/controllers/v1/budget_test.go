package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createSpending creates expenses and income in the Entertainment and
// General categories.
func (suite *TestSuiteStandard) createSpending(t *testing.T, token string) {
	for _, c := range []v1.TransactionEditable{
		{CounterpartyLabel: "Pixel Playground", Category: models.CategoryEntertainment, Date: date(18), Amount: decimal.NewFromInt(-15)},
		{CounterpartyLabel: "Cinema", Category: models.CategoryEntertainment, Date: date(15), Amount: decimal.NewFromInt(-10)},
		{CounterpartyLabel: "Arcade", Category: models.CategoryEntertainment, Date: date(10), Amount: decimal.NewFromInt(-5)},
		{CounterpartyLabel: "Concert", Category: models.CategoryEntertainment, Date: date(5), Amount: decimal.NewFromInt(-20)},
		{CounterpartyLabel: "Refund", Category: models.CategoryEntertainment, Date: date(19), Amount: decimal.NewFromInt(30)},
		{CounterpartyLabel: "Hardware Store", Category: models.CategoryGeneral, Date: date(12), Amount: decimal.NewFromInt(-100)},
	} {
		suite.createTestTransaction(t, token, c)
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	token := suite.token(suite.T())
	suite.createSpending(suite.T(), token)

	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{
		Category: "entertainment",
		Maximum:  decimal.NewFromInt(100),
		Color:    "#277C78",
	}).Data

	assert.Equal(suite.T(), models.CategoryEntertainment, budget.Category)
	assert.Equal(suite.T(), "#277C78", budget.Color)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(budget.Spent), "Spent is %s", budget.Spent)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(budget.Remaining), "Remaining is %s", budget.Remaining)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(budget.Percentage), "Percentage is %s", budget.Percentage)

	labels := make([]string, 0)
	for _, transaction := range budget.LatestSpending {
		labels = append(labels, transaction.CounterpartyLabel)
	}
	assert.Equal(suite.T(), []string{"Pixel Playground", "Cinema", "Arcade"}, labels)

	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), budget.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/transactions?category=Entertainment", budget.Links.Transactions)
}

func (suite *TestSuiteStandard) TestBudgetsOverspent() {
	token := suite.token(suite.T())
	suite.createSpending(suite.T(), token)

	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{
		Category: models.CategoryGeneral,
		Maximum:  decimal.NewFromInt(50),
	}).Data

	assert.True(suite.T(), decimal.NewFromInt(100).Equal(budget.Spent))
	assert.True(suite.T(), decimal.NewFromInt(-50).Equal(budget.Remaining))
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(budget.Percentage))
}

func (suite *TestSuiteStandard) TestBudgetsWithoutSpending() {
	token := suite.token(suite.T())

	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryDiningOut}).Data

	assert.True(suite.T(), budget.Spent.IsZero())
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(budget.Remaining))
	assert.True(suite.T(), budget.Percentage.IsZero())
	assert.Len(suite.T(), budget.LatestSpending, 0)
	assert.Equal(suite.T(), "http://example.com/v1/transactions?category=Dining+Out", budget.Links.Transactions)
}

func (suite *TestSuiteStandard) TestBudgetsCreateFails() {
	token := suite.token(suite.T())
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryBills})

	tests := []struct {
		name string
		body any
		err  string
	}{
		{"Category in use", map[string]any{"category": "Bills", "maximum": "20"}, models.ErrBudgetCategoryInUse.Error()},
		{"Invalid category", map[string]any{"category": "Gambling", "maximum": "20"}, models.ErrCategoryInvalid.Error()},
		{"Zero maximum", map[string]any{"category": "Groceries", "maximum": "0"}, models.ErrBudgetMaximum.Error()},
		{"Negative maximum", map[string]any{"category": "Groceries", "maximum": "-20"}, models.ErrBudgetMaximum.Error()},
		{"Invalid color", map[string]any{"category": "Groceries", "maximum": "20", "color": "green"}, models.ErrColorInvalid.Error()},
		{"Missing category", map[string]any{"maximum": "20"}, "Category is required"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/budgets", tt.body, token)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsSameCategoryOtherUser() {
	suite.createTestBudget(suite.T(), suite.token(suite.T()), v1.BudgetEditable{Category: models.CategoryBills})
	suite.createTestBudget(suite.T(), suite.token(suite.T()), v1.BudgetEditable{Category: models.CategoryBills})
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	token := suite.token(suite.T())
	other := suite.token(suite.T())
	suite.createSpending(suite.T(), token)

	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryEntertainment, Maximum: decimal.NewFromInt(50)})
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryGeneral, Maximum: decimal.NewFromInt(400)})
	suite.createTestBudget(suite.T(), other, v1.BudgetEditable{Category: models.CategoryGeneral})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), models.CategoryEntertainment, response.Data[0].Category)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(response.Data[0].Percentage))
	assert.Equal(suite.T(), models.CategoryGeneral, response.Data[1].Category)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(response.Data[1].Percentage))
}

func (suite *TestSuiteStandard) TestBudgetsGet() {
	token := suite.token(suite.T())
	other := suite.token(suite.T())
	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{})

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"Success", budget.Data.Links.Self, token, http.StatusOK},
		{"Owned by other user", budget.Data.Links.Self, other, http.StatusNotFound},
		{"Does not exist", fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), token, http.StatusNotFound},
		{"Invalid UUID", "http://example.com/v1/budgets/budget", token, http.StatusBadRequest},
		{"No token", budget.Data.Links.Self, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, tt.path, nil, tt.token)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	token := suite.token(suite.T())
	suite.createSpending(suite.T(), token)
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryGeneral, Maximum: decimal.NewFromInt(200)})

	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{
		Category: models.CategoryEntertainment,
		Maximum:  decimal.NewFromInt(100),
		Color:    "#277C78",
	})

	// PATCH keeps the fields that are not sent and recomputes the progress
	r := suite.request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{"maximum": "200"}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var patched v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &patched)
	assert.Equal(suite.T(), models.CategoryEntertainment, patched.Data.Category)
	assert.Equal(suite.T(), "#277C78", patched.Data.Color)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(patched.Data.Percentage))
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(patched.Data.Remaining))

	// PUT replaces all fields
	r = suite.request(suite.T(), http.MethodPut, budget.Data.Links.Self, v1.BudgetEditable{Category: models.CategoryShopping, Maximum: decimal.NewFromInt(80)}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var replaced v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &replaced)
	assert.Equal(suite.T(), models.CategoryShopping, replaced.Data.Category)
	assert.Equal(suite.T(), "", replaced.Data.Color)
	assert.True(suite.T(), replaced.Data.Spent.IsZero())
	assert.Equal(suite.T(), "http://example.com/v1/transactions?category=Shopping", replaced.Data.Links.Transactions)

	// Changing to a category that already has a budget fails
	r = suite.request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{"category": "General"}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrBudgetCategoryInUse.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{"maximum": "0"}, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrBudgetMaximum.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	token := suite.token(suite.T())
	other := suite.token(suite.T())
	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryLifestyle})

	r := suite.request(suite.T(), http.MethodDelete, budget.Data.Links.Self, nil, other)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(suite.T(), http.MethodDelete, budget.Data.Links.Self, nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, budget.Data.Links.Self, nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The category is free again
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{Category: models.CategoryLifestyle})
}

func (suite *TestSuiteStandard) TestBudgetsOptions() {
	token := suite.token(suite.T())
	budget := suite.createTestBudget(suite.T(), token, v1.BudgetEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"List", "http://example.com/v1/budgets", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Detail", budget.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PUT, PATCH, DELETE"},
		{"Does not exist", fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), http.StatusNotFound, ""},
		{"Invalid UUID", "http://example.com/v1/budgets/NotParseableAsUUID", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodOptions, tt.path, nil, token)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
