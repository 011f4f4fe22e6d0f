package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrCounterpartyEmpty    = errors.New("the counterparty label must not be empty")
	ErrCategoryInvalid      = errors.New("the category is not one of the supported categories")
	ErrAmountZero           = errors.New("the transaction amount must not be zero")
	ErrBudgetMaximum        = errors.New("the budget maximum must be larger than zero")
	ErrBudgetCategoryInUse  = errors.New("there already is a budget for this category")
	ErrPotNameEmpty         = errors.New("the pot name must not be empty")
	ErrPotTargetNotPositive = errors.New("the pot target must be larger than zero")
	ErrPotTotalNegative     = errors.New("the pot total must not be negative")
	ErrColorInvalid         = errors.New("the color must be a hex color code like #277C78")
	ErrCurrencyInvalid      = errors.New("the currency must be a valid ISO 4217 currency code")
	ErrUsernameEmpty        = errors.New("the username must not be empty")
	ErrEmailEmpty           = errors.New("the email address must not be empty")
	ErrEmailInUse           = errors.New("there already is a user with this email address")
)

// NotFound returns an ErrResourceNotFound for the named resource.
func NotFound(resource string) error {
	return fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resource)
}
