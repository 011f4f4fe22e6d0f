// Package store defines the persistence interface used by the API.
//
// Every read and write of an owned resource is scoped by the owner's ID.
// Resources of other users are reported as not found.
package store

import (
	"context"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
)

// Collection stores one kind of owned resource.
type Collection[T models.Owned] interface {
	// Get returns the resource with the ID, or an error wrapping
	// models.ErrResourceNotFound.
	Get(ctx context.Context, owner, id uuid.UUID) (T, error)

	// List returns all resources of the owner.
	List(ctx context.Context, owner uuid.UUID) ([]T, error)

	// Create validates and persists a new resource. The ID and timestamps
	// of the resource are set.
	Create(ctx context.Context, resource *T) error

	// Update validates and persists all fields of an existing resource.
	Update(ctx context.Context, resource *T) error

	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// TransactionCollection is a Collection with search support.
type TransactionCollection interface {
	Collection[models.Transaction]

	// Search returns the page of transactions matching the query and the
	// total number of matching transactions.
	Search(ctx context.Context, owner uuid.UUID, query TransactionQuery) ([]models.Transaction, int64, error)
}

type UserCollection interface {
	Get(ctx context.Context, id uuid.UUID) (models.User, error)

	// GetByEmail looks up a user by the normalized email address.
	GetByEmail(ctx context.Context, email string) (models.User, error)

	// Create persists a new user. It returns models.ErrEmailInUse if the
	// email address is already registered.
	Create(ctx context.Context, user *models.User) error

	// Delete removes the user and every resource they own.
	Delete(ctx context.Context, id uuid.UUID) error
}

type BalanceCollection interface {
	// Get returns the balance of the owner. Owners without a saved balance
	// get models.EmptyBalance.
	Get(ctx context.Context, owner uuid.UUID) (models.Balance, error)

	// Save creates or replaces the balance of the owner.
	Save(ctx context.Context, balance *models.Balance) error
}

// Store bundles all collections of one storage backend.
type Store interface {
	Users() UserCollection
	Transactions() TransactionCollection
	Budgets() Collection[models.Budget]
	Pots() Collection[models.Pot]
	Balances() BalanceCollection

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
