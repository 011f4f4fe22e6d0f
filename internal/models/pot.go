package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pot is a savings goal. Total is the amount saved so far.
type Pot struct {
	DefaultModel
	OwnerID uuid.UUID       `json:"-" gorm:"index"`
	Name    string          `json:"name"`
	Target  decimal.Decimal `json:"target" gorm:"type:DECIMAL(20,8)"`
	Total   decimal.Decimal `json:"total" gorm:"type:DECIMAL(20,8)"`
	Color   string          `json:"color"`
}

func (p *Pot) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Color = strings.TrimSpace(p.Color)

	if p.Name == "" {
		return ErrPotNameEmpty
	}

	if !p.Target.IsPositive() {
		return ErrPotTargetNotPositive
	}

	if p.Total.IsNegative() {
		return ErrPotTotalNegative
	}

	if !validColor(p.Color) {
		return ErrColorInvalid
	}

	return nil
}

func (p *Pot) BeforeSave(_ *gorm.DB) error {
	return p.Validate()
}
