package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// DefaultCurrency is used for balances that have never been saved.
const DefaultCurrency = "USD"

// Balance is the user's current balance with the income and expense
// totals they track alongside it. Every user has at most one.
type Balance struct {
	DefaultModel
	OwnerID  uuid.UUID       `json:"-" gorm:"uniqueIndex"`
	Current  decimal.Decimal `json:"current" gorm:"type:DECIMAL(20,8)"`
	Income   decimal.Decimal `json:"income" gorm:"type:DECIMAL(20,8)"`
	Expenses decimal.Decimal `json:"expenses" gorm:"type:DECIMAL(20,8)"`
	Currency string          `json:"currency"`
}

// EmptyBalance returns the balance reported for users that never set one.
func EmptyBalance(owner uuid.UUID) Balance {
	return Balance{
		OwnerID:  owner,
		Current:  decimal.Zero,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Currency: DefaultCurrency,
	}
}

func (b *Balance) Validate() error {
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}

	if _, err := currency.ParseISO(b.Currency); err != nil {
		return ErrCurrencyInvalid
	}

	return nil
}

func (b *Balance) BeforeSave(_ *gorm.DB) error {
	return b.Validate()
}
