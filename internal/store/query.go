package store

import (
	"errors"
	"strings"

	"github.com/finance-tracker/backend/internal/models"
)

var ErrSortInvalid = errors.New("the sort parameter must be one of latest, oldest, a-z, z-a, highest, lowest")

// Sort is the order of a transaction listing.
type Sort string

const (
	SortLatest  Sort = "latest"  // Date, newest first
	SortOldest  Sort = "oldest"  // Date, oldest first
	SortAToZ    Sort = "a-z"     // Counterparty label, ascending
	SortZToA    Sort = "z-a"     // Counterparty label, descending
	SortHighest Sort = "highest" // Amount, largest first
	SortLowest  Sort = "lowest"  // Amount, smallest first
)

// ParseSort parses a sort key. An empty key sorts by SortLatest.
func ParseSort(s string) (Sort, error) {
	switch sort := Sort(strings.ToLower(strings.TrimSpace(s))); sort {
	case "":
		return SortLatest, nil
	case SortLatest, SortOldest, SortAToZ, SortZToA, SortHighest, SortLowest:
		return sort, nil
	}

	return "", ErrSortInvalid
}

// TransactionQuery filters, orders and pages transactions.
type TransactionQuery struct {
	// Search is matched case-insensitively as a substring of the
	// counterparty label.
	Search    string
	Category  models.Category // Empty for all categories
	Recurring *bool           // nil for recurring and one-off transactions
	Sort      Sort
	Offset    uint
	Limit     int // Zero or negative for no limit
}
