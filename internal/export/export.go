// Package export collects all data of a user and writes it as a
// spreadsheet.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Data is everything a user owns.
type Data struct {
	Balance      models.Balance       `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []models.Budget      `json:"budgets"`
	Pots         []models.Pot         `json:"pots"`
}

// Collect reads all data of the owner from s. Transactions are sorted
// latest first.
func Collect(ctx context.Context, s store.Store, owner uuid.UUID) (Data, error) {
	balance, err := s.Balances().Get(ctx, owner)
	if err != nil {
		return Data{}, err
	}

	transactions, _, err := s.Transactions().Search(ctx, owner, store.TransactionQuery{Sort: store.SortLatest})
	if err != nil {
		return Data{}, err
	}

	budgets, err := s.Budgets().List(ctx, owner)
	if err != nil {
		return Data{}, err
	}

	pots, err := s.Pots().List(ctx, owner)
	if err != nil {
		return Data{}, err
	}

	return Data{
		Balance:      balance,
		Transactions: transactions,
		Budgets:      budgets,
		Pots:         pots,
	}, nil
}

// Sheet names of the workbook.
const (
	SheetTransactions = "Transactions"
	SheetBudgets      = "Budgets"
	SheetPots         = "Pots"
	SheetBalance      = "Balance"
)

// dateFormat is the format for dates in the workbook.
const dateFormat = "2006-01-02"

// WriteXLSX writes d as an Excel workbook with one sheet per resource.
// Amounts are written as text to keep their exact decimal value.
func WriteXLSX(w io.Writer, d Data) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetTransactions, transactionRows(d.Transactions)},
		{SheetBudgets, budgetRows(d.Budgets)},
		{SheetPots, potRows(d.Pots)},
		{SheetBalance, balanceRows(d.Balance)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}

		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}

			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("writing row %d of sheet %s: %w", r+1, sheet.name, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func transactionRows(transactions []models.Transaction) [][]any {
	rows := [][]any{{"ID", "Date", "Counterparty", "Category", "Amount", "Recurring"}}
	for _, t := range transactions {
		rows = append(rows, []any{t.ID.String(), formatDate(t.Date), t.CounterpartyLabel, string(t.Category), t.Amount.String(), t.IsRecurring})
	}
	return rows
}

func budgetRows(budgets []models.Budget) [][]any {
	rows := [][]any{{"ID", "Category", "Maximum", "Color"}}
	for _, b := range budgets {
		rows = append(rows, []any{b.ID.String(), string(b.Category), b.Maximum.String(), b.Color})
	}
	return rows
}

func potRows(pots []models.Pot) [][]any {
	rows := [][]any{{"ID", "Name", "Target", "Total", "Color"}}
	for _, p := range pots {
		rows = append(rows, []any{p.ID.String(), p.Name, p.Target.String(), p.Total.String(), p.Color})
	}
	return rows
}

func balanceRows(b models.Balance) [][]any {
	return [][]any{
		{"Current", "Income", "Expenses", "Currency"},
		{b.Current.String(), b.Income.String(), b.Expenses.String(), b.Currency},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}
