package repository

import (
	"context"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	FindByID(ctx context.Context, id uint64) (*model.Author, error)
}

type authorRepository struct {
	db *db.Database
}

func NewAuthorRepository(database *db.Database) AuthorRepository {
	return &authorRepository{db: database}
}

func (r *authorRepository) Create(ctx context.Context, author *model.Author) error {
	logger.Debug("Creating author in database", map[string]interface{}{
		"author_id": author.ID,
	})

	err := r.db.Run(ctx, "author.create", func(tx *gorm.DB) error {
		return tx.Create(author).Error
	})
	if err != nil {
		logger.Error("Failed to create author in database", err, map[string]interface{}{
			"author_id": author.ID,
		})
		return err
	}
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint64) (*model.Author, error) {
	var author model.Author
	err := r.db.Run(ctx, "author.find", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&author).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}
