package sqlstore

import (
	"context"
	"strings"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// collection implements store.Collection for one table. Validation
// runs in the BeforeSave hooks of the models.
type collection[T models.Owned] struct {
	db   *gorm.DB
	name string
}

func (c collection[T]) Get(ctx context.Context, owner, id uuid.UUID) (T, error) {
	var resource T
	err := c.db.WithContext(ctx).Where("owner_id = ? AND id = ?", owner, id).First(&resource).Error
	return resource, err
}

func (c collection[T]) List(ctx context.Context, owner uuid.UUID) ([]T, error) {
	resources := make([]T, 0)
	err := c.db.WithContext(ctx).Where("owner_id = ?", owner).Order("created_at ASC").Find(&resources).Error
	return resources, err
}

func (c collection[T]) Create(ctx context.Context, resource *T) error {
	return c.db.WithContext(ctx).Create(resource).Error
}

func (c collection[T]) Update(ctx context.Context, resource *T) error {
	return c.db.WithContext(ctx).Save(resource).Error
}

func (c collection[T]) Delete(ctx context.Context, owner, id uuid.UUID) error {
	result := c.db.WithContext(ctx).Where("owner_id = ? AND id = ?", owner, id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.NotFound(c.name)
	}
	return nil
}

type transactions struct {
	collection[models.Transaction]
}

// likeEscaper escapes the LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var sortOrders = map[store.Sort]string{
	store.SortLatest:  "date DESC, created_at DESC",
	store.SortOldest:  "date ASC, created_at ASC",
	store.SortAToZ:    "LOWER(counterparty_label) ASC, date DESC",
	store.SortZToA:    "LOWER(counterparty_label) DESC, date DESC",
	store.SortHighest: "amount DESC, date DESC",
	store.SortLowest:  "amount ASC, date DESC",
}

func (t transactions) Search(ctx context.Context, owner uuid.UUID, query store.TransactionQuery) ([]models.Transaction, int64, error) {
	q := t.db.WithContext(ctx).Model(&models.Transaction{}).Where("owner_id = ?", owner)

	if query.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(query.Search)) + "%"
		q = q.Where(`LOWER(counterparty_label) LIKE ? ESCAPE '\'`, pattern)
	}

	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}

	if query.Recurring != nil {
		q = q.Where("is_recurring = ?", *query.Recurring)
	}

	// New session so that the filtered query can be used twice
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sortOrders[query.Sort]
	if !ok {
		order = sortOrders[store.SortLatest]
	}

	limit := query.Limit
	if limit == 0 {
		limit = -1
	}

	page := make([]models.Transaction, 0)
	err := q.Order(order).Offset(int(query.Offset)).Limit(limit).Find(&page).Error
	if err != nil {
		return nil, 0, err
	}

	return page, total, nil
}
