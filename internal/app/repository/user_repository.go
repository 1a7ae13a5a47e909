package repository

import (
	"context"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	BulkCreate(ctx context.Context, users []model.User, batchSize int) (int64, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, username string, fields map[string]interface{}) (int64, error)
}

type userRepository struct {
	db *db.Database
}

func NewUserRepository(database *db.Database) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
	})

	err := r.db.Run(ctx, "user.create", func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// BulkCreate inserts users in batches, skipping usernames that already
// exist. Returns the number of rows inserted.
func (r *userRepository) BulkCreate(ctx context.Context, users []model.User, batchSize int) (int64, error) {
	logger.Debug("Bulk creating users in database", map[string]interface{}{
		"count":      len(users),
		"batch_size": batchSize,
	})

	var inserted int64
	err := r.db.Transaction(ctx, "user.bulk_create", func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).CreateInBatches(users, batchSize)
		inserted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to bulk create users in database", err, map[string]interface{}{
			"count": len(users),
		})
		return 0, err
	}
	return inserted, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	logger.Debug("Finding user by username in database", map[string]interface{}{
		"username": username,
	})

	var user model.User
	err := r.db.Run(ctx, "user.find", func(tx *gorm.DB) error {
		return tx.Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.Run(ctx, "user.exists", func(tx *gorm.DB) error {
		return tx.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	})
	if err != nil {
		logger.Error("Failed to check user existence in database", err, map[string]interface{}{
			"username": username,
		})
		return false, err
	}
	return count > 0, nil
}

// Update applies a partial update by column name and reports how many
// users matched.
func (r *userRepository) Update(ctx context.Context, username string, fields map[string]interface{}) (int64, error) {
	logger.Debug("Updating user in database", map[string]interface{}{
		"username": username,
		"fields":   len(fields),
	})

	var affected int64
	err := r.db.Run(ctx, "user.update", func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).Where("username = ?", username).Updates(fields)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"username": username,
		})
		return 0, err
	}
	return affected, nil
}
