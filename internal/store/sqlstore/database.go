// Package sqlstore implements store.Store on SQLite with gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Store is a store.Store backed by a SQLite database.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open opens the SQLite database at dsn, migrates the schema and
// configures the connection pool.
func Open(dsn string) (*Store, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger:        log.Logger,
			SlowThreshold: 200 * time.Millisecond,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	dsn = fmt.Sprintf("%s?_pragma=busy_timeout(5000)", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(models.User{}, models.Transaction{}, models.Budget{}, models.Pot{}, models.Balance{})
	if err != nil {
		return nil, fmt.Errorf("error during DB migration: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
	}{
		{"finance:after_query", db.Callback().Query().After("*").Register},
		{"finance:after_create", db.Callback().Create().After("*").Register},
		{"finance:after_update", db.Callback().Update().After("*").Register},
		{"finance:after_delete", db.Callback().Delete().After("*").Register},
		{"finance:after_row", db.Callback().Row().After("*").Register},
	}

	for _, c := range callbacks {
		if err := c.register(c.name, errorCallback); err != nil {
			return nil, err
		}
	}

	return &Store{db: db}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Users() store.UserCollection {
	return users{db: s.db}
}

func (s *Store) Transactions() store.TransactionCollection {
	return transactions{collection[models.Transaction]{db: s.db, name: "transaction"}}
}

func (s *Store) Budgets() store.Collection[models.Budget] {
	return collection[models.Budget]{db: s.db, name: "budget"}
}

func (s *Store) Pots() store.Collection[models.Pot] {
	return collection[models.Pot]{db: s.db, name: "pot"}
}

func (s *Store) Balances() store.BalanceCollection {
	return balances{db: s.db}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("database ping failed")
		return models.ErrGeneral
	}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// uniqueConstraints maps violated unique indices to user facing errors.
var uniqueConstraints = map[string]error{
	"UNIQUE constraint failed: budgets.owner_id, budgets.category": models.ErrBudgetCategoryInUse,
	"UNIQUE constraint failed: users.email":                        models.ErrEmailInUse,
}

// errorCallback replaces database errors with user friendly ones.
//
// Errors we cannot provide the user with a helpful message for are logged
// and replaced with models.ErrGeneral.
func errorCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.TrimSuffix(db.Statement.Table, "s")
		db.Error = models.NotFound(name)
		return
	}

	for constraint, err := range uniqueConstraints {
		if strings.Contains(db.Error.Error(), constraint) {
			db.Error = err
			return
		}
	}

	db.Error = driverError(db.Error)
}

// driverError logs errors of the database driver and replaces them with
// models.ErrGeneral. All other errors are returned unchanged.
func driverError(err error) error {
	if err == nil {
		return nil
	}

	// "sql: database is closed" is hard-coded in the sql module
	var sqliteErr *go_sqlite.Error
	if err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return models.ErrGeneral
	}
	return err
}
