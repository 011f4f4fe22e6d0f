package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense of a user.
//
// Negative amounts are expenses, positive amounts are income.
type Transaction struct {
	DefaultModel
	OwnerID           uuid.UUID       `json:"-" gorm:"index"`
	CounterpartyLabel string          `json:"counterpartyLabel"`
	Category          Category        `json:"category"`
	Date              time.Time       `json:"date"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	IsRecurring       bool            `json:"isRecurring"`
}

// Validate normalizes the transaction and checks it for consistency.
func (t *Transaction) Validate() error {
	t.CounterpartyLabel = strings.TrimSpace(t.CounterpartyLabel)
	if t.CounterpartyLabel == "" {
		return ErrCounterpartyEmpty
	}

	if !t.Category.Valid() {
		return ErrCategoryInvalid
	}

	if t.Amount.IsZero() {
		return ErrAmountZero
	}

	if !t.Date.IsZero() {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// Expense reports whether the transaction reduces the balance.
func (t Transaction) Expense() bool {
	return t.Amount.IsNegative()
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	return t.Validate()
}
