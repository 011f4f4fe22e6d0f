package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserSignup() {
	response := suite.createTestUser(suite.T(), v1.UserSignup{
		Username: "  Emma Richardson ",
		Email:    "Emma@Example.com",
	})

	assert.Equal(suite.T(), "Emma Richardson", response.Data.User.Username)
	assert.Equal(suite.T(), "emma@example.com", response.Data.User.Email)
	assert.NotEmpty(suite.T(), response.Data.Token.Token)
	assert.True(suite.T(), now.Add(time.Hour).Equal(response.Data.Token.ExpiresAt), "Token expiry is %s", response.Data.Token.ExpiresAt)
}

func (suite *TestSuiteStandard) TestUserSignupFails() {
	suite.createTestUser(suite.T(), v1.UserSignup{Email: "taken@example.com"})

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Email in use", v1.UserSignup{Username: "Other", Email: "TAKEN@example.com", Password: "long enough password"}, http.StatusBadRequest, models.ErrEmailInUse.Error()},
		{"Password too short", v1.UserSignup{Username: "Short", Email: "short@example.com", Password: "short"}, http.StatusBadRequest, auth.ErrPasswordTooShort.Error()},
		{"Invalid email", v1.UserSignup{Username: "Invalid", Email: "not-an-email", Password: "long enough password"}, http.StatusBadRequest, "Email must be a valid email address"},
		{"Missing username", v1.UserSignup{Email: "missing@example.com", Password: "long enough password"}, http.StatusBadRequest, "Username is required"},
		{"Empty body", "", http.StatusBadRequest, httputil.ErrRequestBodyEmpty.Error()},
		{"Broken body", `{ "username": 2 }`, http.StatusBadRequest, httputil.ErrInvalidBody.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/user/signup", tt.body, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestUserLogin() {
	suite.createTestUser(suite.T(), v1.UserSignup{Email: "login@example.com", Password: "correct horse battery staple"})

	tests := []struct {
		name     string
		login    v1.UserLogin
		status   int
		err      string
		username string
	}{
		{"Success", v1.UserLogin{Email: "login@example.com", Password: "correct horse battery staple"}, http.StatusOK, "", "Emma Richardson"},
		{"Email case does not matter", v1.UserLogin{Email: " LOGIN@example.com", Password: "correct horse battery staple"}, http.StatusOK, "", "Emma Richardson"},
		{"Wrong password", v1.UserLogin{Email: "login@example.com", Password: "incorrect horse battery staple"}, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), ""},
		{"Unknown email", v1.UserLogin{Email: "nobody@example.com", Password: "correct horse battery staple"}, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), ""},
		{"Missing password", v1.UserLogin{Email: "login@example.com"}, http.StatusBadRequest, "Password is required", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/user/login", tt.login, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.SessionResponse
			test.DecodeResponse(t, &r, &response)

			if tt.err != "" {
				assert.Equal(t, tt.err, *response.Error)
				return
			}

			assert.Equal(t, tt.username, response.Data.User.Username)
			assert.NotEmpty(t, response.Data.Token.Token)
		})
	}
}

func (suite *TestSuiteStandard) TestUserGet() {
	signup := suite.createTestUser(suite.T(), v1.UserSignup{Username: "Liam Hughes"})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/user", nil, signup.Data.Token.Token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), signup.Data.User.ID, response.Data.ID)
	assert.Equal(suite.T(), "Liam Hughes", response.Data.Username)
}

func (suite *TestSuiteStandard) TestUserUnauthenticated() {
	tests := []struct {
		name  string
		token string
		err   string
	}{
		{"No token", "", auth.ErrMissingToken.Error()},
		{"Invalid token", "definitely.not.valid", auth.ErrInvalidToken.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "http://example.com/v1/user", nil, tt.token)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestUserLogout() {
	token := suite.token(suite.T())

	r := suite.request(suite.T(), http.MethodPost, "http://example.com/v1/user/logout", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/user", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
	assert.Equal(suite.T(), auth.ErrTokenRevoked.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestUserDelete() {
	signup := suite.createTestUser(suite.T(), v1.UserSignup{Email: "leaving@example.com", Password: "correct horse battery staple"})
	token := signup.Data.Token.Token

	other := suite.token(suite.T())
	kept := suite.createTestTransaction(suite.T(), other, v1.TransactionEditable{})

	suite.createTestTransaction(suite.T(), token, v1.TransactionEditable{})
	suite.createTestBudget(suite.T(), token, v1.BudgetEditable{})
	suite.createTestPot(suite.T(), token, v1.PotEditable{})

	r := suite.request(suite.T(), http.MethodDelete, "http://example.com/v1/user", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The token is revoked
	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	// Login is not possible anymore
	r = suite.request(suite.T(), http.MethodPost, "http://example.com/v1/user/login", v1.UserLogin{Email: "leaving@example.com", Password: "correct horse battery staple"}, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	// The email address can be used again, and nothing of the old account is visible
	token = suite.createTestUser(suite.T(), v1.UserSignup{Email: "leaving@example.com"}).Data.Token.Token
	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", nil, token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 0)

	// Other users keep their data
	r = suite.request(suite.T(), http.MethodGet, kept.Data.Links.Self, nil, other)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestUserDeleteInvalidatesAllTokens() {
	signup := suite.createTestUser(suite.T(), v1.UserSignup{Email: "two-devices@example.com", Password: "correct horse battery staple"})

	r := suite.request(suite.T(), http.MethodPost, "http://example.com/v1/user/login", v1.UserLogin{Email: "two-devices@example.com", Password: "correct horse battery staple"}, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var login v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &login)
	second := login.Data.Token.Token

	r = suite.request(suite.T(), http.MethodDelete, "http://example.com/v1/user", nil, signup.Data.Token.Token)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodPost, "http://example.com/v1/pots", v1.PotEditable{Name: "Orphan", Target: decimal.NewFromInt(100)}, second)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
	assert.Equal(suite.T(), auth.ErrInvalidToken.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/user", nil, second)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestUserOptions() {
	token := suite.token(suite.T())

	tests := []struct {
		path  string
		token string
		allow string
	}{
		{"http://example.com/v1/user/signup", "", "OPTIONS, POST"},
		{"http://example.com/v1/user/login", "", "OPTIONS, POST"},
		{"http://example.com/v1/user/logout", token, "OPTIONS, POST"},
		{"http://example.com/v1/user", token, "OPTIONS, GET, DELETE"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := suite.request(t, http.MethodOptions, tt.path, nil, tt.token)
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
