package mongostore

import (
	"context"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type users struct {
	store *Store
	coll  *mongo.Collection
}

func (u users) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDocument
	err := u.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.User{}, models.NotFound("user")
	} else if err != nil {
		return models.User{}, wrap(err)
	}

	user, err := decodeUser(doc)
	return user, wrap(err)
}

func (u users) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return u.findOne(ctx, bson.M{"_id": id.String()})
}

func (u users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return u.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (u users) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	user.Init(u.store.now())
	_, err := u.coll.InsertOne(ctx, encodeUser(user))
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailInUse
	}
	return wrap(err)
}

// Delete removes the data of the user before the user. If removing the
// data fails, the user still exists and can delete the account again.
func (u users) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}

	for _, name := range []string{TransactionCollection, BudgetCollection, PotCollection, BalanceCollection} {
		if _, err := u.store.db.Collection(name).DeleteMany(ctx, bson.M{"owner": id.String()}); err != nil {
			return wrap(err)
		}
	}

	result, err := u.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return wrap(err)
	}

	if result.DeletedCount == 0 {
		return models.NotFound("user")
	}

	return nil
}

type balances struct {
	store *Store
	coll  *mongo.Collection
}

func (b balances) find(ctx context.Context, owner string) (models.Balance, bool, error) {
	var doc balanceDocument
	err := b.coll.FindOne(ctx, bson.M{"owner": owner}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.Balance{}, false, nil
	} else if err != nil {
		return models.Balance{}, false, wrap(err)
	}

	balance, err := decodeBalance(doc)
	return balance, true, wrap(err)
}

func (b balances) Get(ctx context.Context, owner uuid.UUID) (models.Balance, error) {
	balance, ok, err := b.find(ctx, owner.String())
	if err != nil {
		return models.Balance{}, err
	}

	if !ok {
		return models.EmptyBalance(owner), nil
	}
	return balance, nil
}

func (b balances) Save(ctx context.Context, balance *models.Balance) error {
	if err := balance.Validate(); err != nil {
		return err
	}

	existing, ok, err := b.find(ctx, balance.OwnerID.String())
	if err != nil {
		return err
	}

	if ok {
		balance.ID = existing.ID
		balance.CreatedAt = existing.CreatedAt
		balance.UpdatedAt = b.store.now().In(time.UTC)
	} else {
		balance.Init(b.store.now())
	}

	doc, err := encodeBalance(balance)
	if err != nil {
		return wrap(err)
	}

	_, err = b.coll.ReplaceOne(ctx, bson.M{"owner": doc.Owner}, doc, options.Replace().SetUpsert(true))
	return wrap(err)
}
