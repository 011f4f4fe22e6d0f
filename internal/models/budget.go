package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validColor accepts an empty color or a six digit hex code.
func validColor(color string) bool {
	return color == "" || colorPattern.MatchString(color)
}

// Budget is the spending limit a user sets for one category.
type Budget struct {
	DefaultModel
	OwnerID  uuid.UUID       `json:"-" gorm:"uniqueIndex:budget_owner_category"`
	Category Category        `json:"category" gorm:"uniqueIndex:budget_owner_category"`
	Maximum  decimal.Decimal `json:"maximum" gorm:"type:DECIMAL(20,8)"`
	Color    string          `json:"color"`
}

func (b *Budget) Validate() error {
	b.Color = strings.TrimSpace(b.Color)

	if !b.Category.Valid() {
		return ErrCategoryInvalid
	}

	if !b.Maximum.IsPositive() {
		return ErrBudgetMaximum
	}

	if !validColor(b.Color) {
		return ErrColorInvalid
	}

	return nil
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	return b.Validate()
}
