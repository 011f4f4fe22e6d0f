// Package summary computes the derived values shown for bills, budgets
// and pots. All functions are pure and take the reference time explicitly.
package summary

import (
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Status is the bucket a bill falls into on a given day.
type Status string

const (
	StatusPaid     Status = "paid"
	StatusUpcoming Status = "upcoming"
	StatusDueSoon  Status = "due-soon"
	StatusNone     Status = "none"
)

// BillsSummary is the per-bucket count and amount of a list of bills.
type BillsSummary struct {
	TotalBillsAmount decimal.Decimal `json:"totalBillsAmount" example:"-384.98"` // Signed sum of all bills
	PaidCount        int             `json:"paidCount" example:"4"`
	PaidAmount       decimal.Decimal `json:"paidAmount" example:"190"` // Sum of absolute amounts
	UpcomingCount    int             `json:"upcomingCount" example:"3"`
	UpcomingAmount   decimal.Decimal `json:"upcomingAmount" example:"194.98"` // Sum of absolute amounts
	DueSoonCount     int             `json:"dueSoonCount" example:"1"`
	DueSoonAmount    decimal.Decimal `json:"dueSoonAmount" example:"-59.69"` // Signed sum
}

// day truncates t to midnight of its calendar day in loc.
func day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// BillStatus returns the bucket of a single transaction relative to the
// calendar day of now. Transactions dated on that day, recurring
// transactions in the future and transactions without a date are in no
// bucket.
func BillStatus(t models.Transaction, now time.Time) Status {
	if t.Date.IsZero() {
		return StatusNone
	}

	today := day(now, now.Location())
	date := day(t.Date, now.Location())

	switch {
	case t.IsRecurring && date.Before(today):
		return StatusPaid
	case !t.IsRecurring && date.After(today):
		return StatusUpcoming
	case !t.IsRecurring && date.Before(today):
		return StatusDueSoon
	}

	return StatusNone
}

// Bills partitions the transactions into paid, upcoming and due soon bills.
//
// Paid and upcoming amounts are sums of absolute values, the due soon
// amount and the total are signed sums. Clients depend on this.
func Bills(transactions []models.Transaction, now time.Time) BillsSummary {
	s := BillsSummary{
		TotalBillsAmount: decimal.Zero,
		PaidAmount:       decimal.Zero,
		UpcomingAmount:   decimal.Zero,
		DueSoonAmount:    decimal.Zero,
	}

	for _, t := range transactions {
		s.TotalBillsAmount = s.TotalBillsAmount.Add(t.Amount)

		switch BillStatus(t, now) {
		case StatusPaid:
			s.PaidCount++
			s.PaidAmount = s.PaidAmount.Add(t.Amount.Abs())
		case StatusUpcoming:
			s.UpcomingCount++
			s.UpcomingAmount = s.UpcomingAmount.Add(t.Amount.Abs())
		case StatusDueSoon:
			s.DueSoonCount++
			s.DueSoonAmount = s.DueSoonAmount.Add(t.Amount)
		}
	}

	return s
}
