package mongostore

import (
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Meta holds the fields shared by all documents. Documents store IDs as
// strings and money as Decimal128.
type Meta struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newMeta(m models.DefaultModel) Meta {
	return Meta{ID: m.ID.String(), CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m Meta) model() (models.DefaultModel, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return models.DefaultModel{}, fmt.Errorf("invalid document ID %q: %w", m.ID, err)
	}

	return models.DefaultModel{
		ID: id,
		Timestamps: models.Timestamps{
			CreatedAt: m.CreatedAt.In(time.UTC),
			UpdatedAt: m.UpdatedAt.In(time.UTC),
		},
	}, nil
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	return bson.ParseDecimal128(d.String())
}

func fromDecimal128(d bson.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

// decimals converts several Decimal128 values, stopping at the first error.
func decimals(values ...bson.Decimal128) ([]decimal.Decimal, error) {
	result := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := fromDecimal128(v)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

func decimal128s(values ...decimal.Decimal) ([]bson.Decimal128, error) {
	result := make([]bson.Decimal128, 0, len(values))
	for _, v := range values {
		d, err := toDecimal128(v)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

type transactionDocument struct {
	Meta              `bson:",inline"`
	Owner             string          `bson:"owner"`
	CounterpartyLabel string          `bson:"counterpartyLabel"`
	Category          string          `bson:"category"`
	Date              time.Time       `bson:"date"`
	Amount            bson.Decimal128 `bson:"amount"`
	IsRecurring       bool            `bson:"isRecurring"`
}

func encodeTransaction(t *models.Transaction) (transactionDocument, error) {
	amount, err := toDecimal128(t.Amount)
	if err != nil {
		return transactionDocument{}, err
	}

	return transactionDocument{
		Meta:              newMeta(t.DefaultModel),
		Owner:             t.OwnerID.String(),
		CounterpartyLabel: t.CounterpartyLabel,
		Category:          string(t.Category),
		Date:              t.Date,
		Amount:            amount,
		IsRecurring:       t.IsRecurring,
	}, nil
}

func decodeTransaction(d transactionDocument) (models.Transaction, error) {
	m, err := d.model()
	if err != nil {
		return models.Transaction{}, err
	}

	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	date := d.Date
	if !date.IsZero() {
		date = date.In(time.UTC)
	}

	return models.Transaction{
		DefaultModel:      m,
		OwnerID:           owner,
		CounterpartyLabel: d.CounterpartyLabel,
		Category:          models.Category(d.Category),
		Date:              date,
		Amount:            amount,
		IsRecurring:       d.IsRecurring,
	}, nil
}

type budgetDocument struct {
	Meta     `bson:",inline"`
	Owner    string          `bson:"owner"`
	Category string          `bson:"category"`
	Maximum  bson.Decimal128 `bson:"maximum"`
	Color    string          `bson:"color"`
}

func encodeBudget(b *models.Budget) (budgetDocument, error) {
	maximum, err := toDecimal128(b.Maximum)
	if err != nil {
		return budgetDocument{}, err
	}

	return budgetDocument{
		Meta:     newMeta(b.DefaultModel),
		Owner:    b.OwnerID.String(),
		Category: string(b.Category),
		Maximum:  maximum,
		Color:    b.Color,
	}, nil
}

func decodeBudget(d budgetDocument) (models.Budget, error) {
	m, err := d.model()
	if err != nil {
		return models.Budget{}, err
	}

	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return models.Budget{}, err
	}

	maximum, err := fromDecimal128(d.Maximum)
	if err != nil {
		return models.Budget{}, err
	}

	return models.Budget{
		DefaultModel: m,
		OwnerID:      owner,
		Category:     models.Category(d.Category),
		Maximum:      maximum,
		Color:        d.Color,
	}, nil
}

type potDocument struct {
	Meta   `bson:",inline"`
	Owner  string          `bson:"owner"`
	Name   string          `bson:"name"`
	Target bson.Decimal128 `bson:"target"`
	Total  bson.Decimal128 `bson:"total"`
	Color  string          `bson:"color"`
}

func encodePot(p *models.Pot) (potDocument, error) {
	values, err := decimal128s(p.Target, p.Total)
	if err != nil {
		return potDocument{}, err
	}

	return potDocument{
		Meta:   newMeta(p.DefaultModel),
		Owner:  p.OwnerID.String(),
		Name:   p.Name,
		Target: values[0],
		Total:  values[1],
		Color:  p.Color,
	}, nil
}

func decodePot(d potDocument) (models.Pot, error) {
	m, err := d.model()
	if err != nil {
		return models.Pot{}, err
	}

	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return models.Pot{}, err
	}

	values, err := decimals(d.Target, d.Total)
	if err != nil {
		return models.Pot{}, err
	}

	return models.Pot{
		DefaultModel: m,
		OwnerID:      owner,
		Name:         d.Name,
		Target:       values[0],
		Total:        values[1],
		Color:        d.Color,
	}, nil
}

type balanceDocument struct {
	Meta     `bson:",inline"`
	Owner    string          `bson:"owner"`
	Current  bson.Decimal128 `bson:"current"`
	Income   bson.Decimal128 `bson:"income"`
	Expenses bson.Decimal128 `bson:"expenses"`
	Currency string          `bson:"currency"`
}

func encodeBalance(b *models.Balance) (balanceDocument, error) {
	values, err := decimal128s(b.Current, b.Income, b.Expenses)
	if err != nil {
		return balanceDocument{}, err
	}

	return balanceDocument{
		Meta:     newMeta(b.DefaultModel),
		Owner:    b.OwnerID.String(),
		Current:  values[0],
		Income:   values[1],
		Expenses: values[2],
		Currency: b.Currency,
	}, nil
}

func decodeBalance(d balanceDocument) (models.Balance, error) {
	m, err := d.model()
	if err != nil {
		return models.Balance{}, err
	}

	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return models.Balance{}, err
	}

	values, err := decimals(d.Current, d.Income, d.Expenses)
	if err != nil {
		return models.Balance{}, err
	}

	return models.Balance{
		DefaultModel: m,
		OwnerID:      owner,
		Current:      values[0],
		Income:       values[1],
		Expenses:     values[2],
		Currency:     d.Currency,
	}, nil
}

type userDocument struct {
	Meta         `bson:",inline"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"passwordHash"`
}

func encodeUser(u *models.User) userDocument {
	return userDocument{
		Meta:         newMeta(u.DefaultModel),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}
}

func decodeUser(d userDocument) (models.User, error) {
	m, err := d.model()
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		DefaultModel: m,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}, nil
}
