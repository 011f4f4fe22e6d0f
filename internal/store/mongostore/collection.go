package mongostore

import (
	"context"
	"regexp"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// collection implements store.Collection for resources of type T stored
// as documents of type D.
type collection[T models.Owned, D any] struct {
	coll   *mongo.Collection
	name   string
	now    func() time.Time
	encode func(*T) (D, error)
	decode func(D) (T, error)

	// prepare validates the resource and returns its base model and owner
	prepare func(*T) (*models.DefaultModel, string, error)

	// duplicate is returned when a unique index is violated
	duplicate error
}

func (c collection[T, D]) filter(owner, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "owner": owner.String()}
}

func (c collection[T, D]) Get(ctx context.Context, owner, id uuid.UUID) (T, error) {
	var doc D
	err := c.coll.FindOne(ctx, c.filter(owner, id)).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		var zero T
		return zero, models.NotFound(c.name)
	} else if err != nil {
		var zero T
		return zero, wrap(err)
	}

	resource, err := c.decode(doc)
	return resource, wrap(err)
}

func (c collection[T, D]) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap(err)
	}

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrap(err)
	}

	resources := make([]T, 0, len(docs))
	for _, doc := range docs {
		r, err := c.decode(doc)
		if err != nil {
			return nil, wrap(err)
		}
		resources = append(resources, r)
	}

	return resources, nil
}

func (c collection[T, D]) List(ctx context.Context, owner uuid.UUID) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return c.find(ctx, bson.M{"owner": owner.String()}, opts)
}

func (c collection[T, D]) Create(ctx context.Context, resource *T) error {
	base, _, err := c.prepare(resource)
	if err != nil {
		return err
	}

	base.Init(c.now())
	doc, err := c.encode(resource)
	if err != nil {
		return wrap(err)
	}

	_, err = c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) && c.duplicate != nil {
		return c.duplicate
	}
	return wrap(err)
}

func (c collection[T, D]) Update(ctx context.Context, resource *T) error {
	base, owner, err := c.prepare(resource)
	if err != nil {
		return err
	}

	base.UpdatedAt = c.now().In(time.UTC)
	doc, err := c.encode(resource)
	if err != nil {
		return wrap(err)
	}

	result, err := c.coll.ReplaceOne(ctx, bson.M{"_id": base.ID.String(), "owner": owner}, doc)
	if mongo.IsDuplicateKeyError(err) && c.duplicate != nil {
		return c.duplicate
	} else if err != nil {
		return wrap(err)
	}

	if result.MatchedCount == 0 {
		return models.NotFound(c.name)
	}
	return nil
}

func (c collection[T, D]) Delete(ctx context.Context, owner, id uuid.UUID) error {
	result, err := c.coll.DeleteOne(ctx, c.filter(owner, id))
	if err != nil {
		return wrap(err)
	}

	if result.DeletedCount == 0 {
		return models.NotFound(c.name)
	}
	return nil
}

type transactions struct {
	collection[models.Transaction, transactionDocument]
}

var sortOrders = map[store.Sort]bson.D{
	store.SortLatest:  {{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}},
	store.SortOldest:  {{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}},
	store.SortAToZ:    {{Key: "counterpartyLabel", Value: 1}, {Key: "date", Value: -1}},
	store.SortZToA:    {{Key: "counterpartyLabel", Value: -1}, {Key: "date", Value: -1}},
	store.SortHighest: {{Key: "amount", Value: -1}, {Key: "date", Value: -1}},
	store.SortLowest:  {{Key: "amount", Value: 1}, {Key: "date", Value: -1}},
}

func (t transactions) Search(ctx context.Context, owner uuid.UUID, query store.TransactionQuery) ([]models.Transaction, int64, error) {
	filter := bson.M{"owner": owner.String()}

	if query.Search != "" {
		filter["counterpartyLabel"] = bson.Regex{Pattern: regexp.QuoteMeta(query.Search), Options: "i"}
	}

	if query.Category != "" {
		filter["category"] = string(query.Category)
	}

	if query.Recurring != nil {
		filter["isRecurring"] = *query.Recurring
	}

	total, err := t.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrap(err)
	}

	order, ok := sortOrders[query.Sort]
	if !ok {
		order = sortOrders[store.SortLatest]
	}

	// Strength 2 compares labels case-insensitively
	opts := options.Find().
		SetSort(order).
		SetSkip(int64(query.Offset)).
		SetCollation(&options.Collation{Locale: "en", Strength: 2})

	if query.Limit > 0 {
		opts = opts.SetLimit(int64(query.Limit))
	}

	page, err := t.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	return page, total, nil
}
