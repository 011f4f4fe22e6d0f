package models

import (
	"strings"
)

// Category is the spending category of a transaction or budget.
type Category string

const (
	CategoryEntertainment  Category = "Entertainment"
	CategoryBills          Category = "Bills"
	CategoryGroceries      Category = "Groceries"
	CategoryDiningOut      Category = "Dining Out"
	CategoryTransportation Category = "Transportation"
	CategoryPersonalCare   Category = "Personal Care"
	CategoryEducation      Category = "Education"
	CategoryLifestyle      Category = "Lifestyle"
	CategoryShopping       Category = "Shopping"
	CategoryGeneral        Category = "General"
	CategoryIncome         Category = "Income"
)

// Categories lists all supported categories in display order.
var Categories = []Category{
	CategoryEntertainment,
	CategoryBills,
	CategoryGroceries,
	CategoryDiningOut,
	CategoryTransportation,
	CategoryPersonalCare,
	CategoryEducation,
	CategoryLifestyle,
	CategoryShopping,
	CategoryGeneral,
	CategoryIncome,
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ParseCategory returns the category matching s. Matching ignores case
// and surrounding whitespace, so "dining out" parses to CategoryDiningOut.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, category := range Categories {
		if strings.EqualFold(s, string(category)) {
			return category, nil
		}
	}

	return "", ErrCategoryInvalid
}
