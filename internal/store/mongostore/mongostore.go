// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	TransactionCollection = "transactions"
	BudgetCollection      = "budgets"
	PotCollection         = "pots"
	BalanceCollection     = "balances"
	UserCollection        = "users"
)

// Store is a store.Store backed by a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open connects to the MongoDB deployment at uri and ensures the indices
// on the collections of database exist.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(database),
		now:    time.Now,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("database", database).Msg("connected to MongoDB")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		TransactionCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "date", Value: -1}}},
		},
		BudgetCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "category", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		PotCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		BalanceCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("could not create indexes for %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) Users() store.UserCollection {
	return users{store: s, coll: s.db.Collection(UserCollection)}
}

func (s *Store) Transactions() store.TransactionCollection {
	return transactions{collection[models.Transaction, transactionDocument]{
		coll:   s.db.Collection(TransactionCollection),
		name:   "transaction",
		now:    s.now,
		encode: encodeTransaction,
		decode: decodeTransaction,
		prepare: func(t *models.Transaction) (*models.DefaultModel, string, error) {
			return &t.DefaultModel, t.OwnerID.String(), t.Validate()
		},
	}}
}

func (s *Store) Budgets() store.Collection[models.Budget] {
	return collection[models.Budget, budgetDocument]{
		coll:      s.db.Collection(BudgetCollection),
		name:      "budget",
		now:       s.now,
		encode:    encodeBudget,
		decode:    decodeBudget,
		duplicate: models.ErrBudgetCategoryInUse,
		prepare: func(b *models.Budget) (*models.DefaultModel, string, error) {
			return &b.DefaultModel, b.OwnerID.String(), b.Validate()
		},
	}
}

func (s *Store) Pots() store.Collection[models.Pot] {
	return collection[models.Pot, potDocument]{
		coll:   s.db.Collection(PotCollection),
		name:   "pot",
		now:    s.now,
		encode: encodePot,
		decode: decodePot,
		prepare: func(p *models.Pot) (*models.DefaultModel, string, error) {
			return &p.DefaultModel, p.OwnerID.String(), p.Validate()
		},
	}
}

func (s *Store) Balances() store.BalanceCollection {
	return balances{store: s, coll: s.db.Collection(BalanceCollection)}
}

func (s *Store) Ping(ctx context.Context) error {
	return wrap(s.client.Ping(ctx, nil))
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the database with all collections.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

// wrap replaces errors we cannot provide the user with a helpful message
// for with models.ErrGeneral. The original error is logged.
func wrap(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, models.ErrGeneral) {
		return err
	}

	log.Error().Msgf("%T: %v", err, err.Error())
	return models.ErrGeneral
}
