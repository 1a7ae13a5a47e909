package repository

import (
	"context"
	"errors"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(ctx context.Context, wishlist *model.Wishlist) error
	FindByUserID(ctx context.Context, userID string) (*model.Wishlist, error)
	AddBook(ctx context.Context, wishlistID uint, title string) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

type wishlistRepository struct {
	db *db.Database
}

func NewWishlistRepository(database *db.Database) WishlistRepository {
	return &wishlistRepository{db: database}
}

// Create inserts the wishlist together with its initial books.
func (r *wishlistRepository) Create(ctx context.Context, wishlist *model.Wishlist) error {
	logger.Debug("Creating wishlist in database", map[string]interface{}{
		"user_id": wishlist.UserID,
		"books":   len(wishlist.Books),
	})

	err := r.db.Transaction(ctx, "wishlist.create", func(tx *gorm.DB) error {
		return tx.Create(wishlist).Error
	})
	if err != nil {
		logger.Error("Failed to create wishlist in database", err, map[string]interface{}{
			"user_id": wishlist.UserID,
		})
		return err
	}

	logger.Debug("Wishlist created in database", map[string]interface{}{
		"wishlist_id": wishlist.ID,
		"user_id":     wishlist.UserID,
	})
	return nil
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID string) (*model.Wishlist, error) {
	logger.Debug("Finding wishlist by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var wishlist model.Wishlist
	err := r.db.Run(ctx, "wishlist.find", func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).
			Preload("Books", func(q *gorm.DB) *gorm.DB {
				return q.Order("wishlist_books.id ASC")
			}).
			First(&wishlist).Error
	})
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// AddBook inserts a title; a title already in the wishlist fails with
// gorm.ErrDuplicatedKey.
func (r *wishlistRepository) AddBook(ctx context.Context, wishlistID uint, title string) error {
	logger.Debug("Adding book to wishlist in database", map[string]interface{}{
		"wishlist_id": wishlistID,
		"book_title":  title,
	})

	err := r.db.Run(ctx, "wishlist.add_book", func(tx *gorm.DB) error {
		return tx.Create(&model.WishlistBook{WishlistID: wishlistID, BookTitle: title}).Error
	})
	if err != nil {
		logger.Error("Failed to add book to wishlist in database", err, map[string]interface{}{
			"wishlist_id": wishlistID,
			"book_title":  title,
		})
		return err
	}
	return nil
}

// DeleteByUserID removes the user's wishlist and its books, returning the
// number of wishlists removed.
func (r *wishlistRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	logger.Debug("Deleting wishlist from database", map[string]interface{}{
		"user_id": userID,
	})

	var affected int64
	err := r.db.Transaction(ctx, "wishlist.delete", func(tx *gorm.DB) error {
		var wishlist model.Wishlist
		if err := tx.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("wishlist_id = ?", wishlist.ID).Delete(&model.WishlistBook{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&wishlist)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to delete wishlist from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return affected, nil
}
