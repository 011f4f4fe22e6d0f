package sqlstore

import (
	"context"
	"errors"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type users struct {
	db *gorm.DB
}

func (u users) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return user, err
}

func (u users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error
	return user, err
}

func (u users) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u users) Delete(ctx context.Context, id uuid.UUID) error {
	// Begin and Commit do not run the error callback
	return driverError(u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{&models.Transaction{}, &models.Budget{}, &models.Pot{}, &models.Balance{}}
		for _, model := range owned {
			if err := tx.Where("owner_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return models.NotFound("user")
		}
		return nil
	}))
}

type balances struct {
	db *gorm.DB
}

func (b balances) Get(ctx context.Context, owner uuid.UUID) (models.Balance, error) {
	var balance models.Balance
	err := b.db.WithContext(ctx).First(&balance, "owner_id = ?", owner).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.EmptyBalance(owner), nil
	}
	return balance, err
}

func (b balances) Save(ctx context.Context, balance *models.Balance) error {
	return driverError(b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Balance
		err := tx.First(&existing, "owner_id = ?", balance.OwnerID).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			return tx.Create(balance).Error
		} else if err != nil {
			return err
		}

		balance.ID = existing.ID
		balance.CreatedAt = existing.CreatedAt
		return tx.Save(balance).Error
	}))
}
