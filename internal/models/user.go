package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is an account that owns transactions, budgets, pots and a balance.
type User struct {
	DefaultModel
	Username     string `json:"username"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
}

// NormalizeEmail returns the canonical form of an email address.
// Emails are compared case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = NormalizeEmail(u.Email)

	if u.Username == "" {
		return ErrUsernameEmpty
	}

	if u.Email == "" {
		return ErrEmailEmpty
	}

	return nil
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	return u.Validate()
}
