package repository

import (
	"context"
	"time"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id string) (*model.Review, error)
	FindByBookID(ctx context.Context, bookID string, limit int) ([]model.Review, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type reviewRepository struct {
	db *db.Database
}

func NewReviewRepository(database *db.Database) ReviewRepository {
	return &reviewRepository{db: database}
}

// Create 리뷰 생성
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"review_id": review.ID,
		"book_id":   review.BookID,
	})

	err := r.db.Run(ctx, "review.create", func(tx *gorm.DB) error {
		return tx.Create(review).Error
	})
	if err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"review_id": review.ID,
			"book_id":   review.BookID,
		})
		return err
	}
	return nil
}

// FindByID ID로 리뷰 조회
func (r *reviewRepository) FindByID(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	err := r.db.Run(ctx, "review.find", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByBookID 도서별 리뷰 목록 조회 (작성 순)
func (r *reviewRepository) FindByBookID(ctx context.Context, bookID string, limit int) ([]model.Review, error) {
	reviews := []model.Review{}
	err := r.db.Run(ctx, "review.find_by_book", func(tx *gorm.DB) error {
		query := tx.Where("book_id = ?", bookID).Order("created_at ASC").Order("id ASC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Find(&reviews).Error
	})
	if err != nil {
		logger.Error("Failed to find reviews in database", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, err
	}
	return reviews, nil
}

// Update 리뷰 수정, 일치한 행 수 반환
func (r *reviewRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": id,
		"fields":    len(fields),
	})

	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	var affected int64
	err := r.db.Run(ctx, "review.update", func(tx *gorm.DB) error {
		result := tx.Model(&model.Review{}).Where("id = ?", id).Updates(updates)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": id,
		})
		return 0, err
	}
	return affected, nil
}

// Delete 리뷰 삭제, 삭제된 행 수 반환
func (r *reviewRepository) Delete(ctx context.Context, id string) (int64, error) {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	var affected int64
	err := r.db.Run(ctx, "review.delete", func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Review{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return 0, err
	}
	return affected, nil
}
