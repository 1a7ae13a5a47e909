package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrInvalidReview     = errors.New("invalid review")
	ErrInvalidReviewID   = errors.New("invalid review ID format")
	ErrNoReviewChanges   = errors.New("no review fields provided")
	ErrReviewRatingRange = errors.New("rating must be a whole number between 1 and 5")
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5

	// ReviewListLimit caps how many reviews one listing returns.
	ReviewListLimit = 100
)

type CreateReviewInput struct {
	BookID  string
	Rating  int
	Comment *string
}

// UpdateReviewInput holds the fields to change; nil fields are kept.
type UpdateReviewInput struct {
	BookID  *string
	Rating  *int
	Comment *string
}

type ReviewService interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*model.Review, error)
	GetReviews(ctx context.Context, bookID string) ([]model.Review, error)
	UpdateReview(ctx context.Context, reviewID string, input UpdateReviewInput) error
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// CreateReview 리뷰 생성, ID는 서버에서 발급
func (s *reviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*model.Review, error) {
	bookID := strings.TrimSpace(input.BookID)
	logger.Info("Creating review", map[string]interface{}{
		"book_id": bookID,
		"rating":  input.Rating,
	})

	if bookID == "" {
		return nil, fmt.Errorf("%w: book_id is required", ErrInvalidReview)
	}
	if err := validateReviewRating(input.Rating); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:      uuid.NewString(),
		BookID:  bookID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	created, err := s.getReview(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Review created successfully", map[string]interface{}{
		"review_id": review.ID,
		"book_id":   bookID,
	})
	return created, nil
}

// GetReviews 도서별 리뷰 목록, 없으면 빈 목록
func (s *reviewService) GetReviews(ctx context.Context, bookID string) ([]model.Review, error) {
	return s.reviewRepo.FindByBookID(ctx, strings.TrimSpace(bookID), ReviewListLimit)
}

// UpdateReview 리뷰 수정
func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, input UpdateReviewInput) error {
	logger.Info("Updating review", map[string]interface{}{
		"review_id": reviewID,
	})

	reviewID, err := parseReviewID(reviewID)
	if err != nil {
		return err
	}

	fields := make(map[string]interface{})
	if input.BookID != nil {
		bookID := strings.TrimSpace(*input.BookID)
		if bookID == "" {
			return fmt.Errorf("%w: book_id must not be empty", ErrInvalidReview)
		}
		fields["book_id"] = bookID
	}
	if input.Rating != nil {
		if err := validateReviewRating(*input.Rating); err != nil {
			return err
		}
		fields["rating"] = *input.Rating
	}
	if input.Comment != nil {
		fields["comment"] = *input.Comment
	}
	if len(fields) == 0 {
		return ErrNoReviewChanges
	}

	matched, err := s.reviewRepo.Update(ctx, reviewID, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrReviewNotFound
	}

	logger.Info("Review updated successfully", map[string]interface{}{
		"review_id": reviewID,
	})
	return nil
}

// DeleteReview 리뷰 삭제
func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	logger.Info("Deleting review", map[string]interface{}{
		"review_id": reviewID,
	})

	reviewID, err := parseReviewID(reviewID)
	if err != nil {
		return err
	}

	deleted, err := s.reviewRepo.Delete(ctx, reviewID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *reviewService) getReview(ctx context.Context, reviewID string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// parseReviewID 형식 검증 후 정규화된 UUID 문자열 반환
func parseReviewID(reviewID string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(reviewID))
	if err != nil {
		return "", ErrInvalidReviewID
	}
	return id.String(), nil
}

func validateReviewRating(rating int) error {
	if rating < MinReviewRating || rating > MaxReviewRating {
		return fmt.Errorf("%w: %v", ErrInvalidReview, ErrReviewRatingRange)
	}
	return nil
}
