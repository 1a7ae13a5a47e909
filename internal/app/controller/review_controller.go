package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	apperrors "github.com/ikkim/bookstore-backend/internal/errors"
	"github.com/ikkim/bookstore-backend/internal/middleware"
	"github.com/ikkim/bookstore-backend/pkg/logger"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	BookID  string  `json:"book_id" binding:"required,max=100"`
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

type UpdateReviewRequest struct {
	BookID  *string `json:"book_id" binding:"omitempty,max=100"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// respondReviewError maps review service errors to HTTP responses.
func respondReviewError(c *gin.Context, log *logger.Logger, err error, fields map[string]interface{}) {
	switch {
	case errors.Is(err, service.ErrInvalidReviewID):
		apperrors.BadRequest(c, apperrors.ReviewInvalidID, "Invalid review ID format")
	case errors.Is(err, service.ErrInvalidReview):
		apperrors.BadRequest(c, apperrors.ReviewInvalid, err.Error())
	case errors.Is(err, service.ErrNoReviewChanges):
		apperrors.BadRequest(c, apperrors.ValidationNoChanges, "No review fields provided")
	case errors.Is(err, service.ErrReviewNotFound):
		apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error("Review store unavailable", err, fields)
		apperrors.ServiceUnavailable(c, "")
	default:
		log.Error("Review operation failed", err, fields)
		apperrors.InternalError(c, "")
	}
}

// CreateReview 리뷰 작성
// POST /reviews/
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create review request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "Invalid review")
		return
	}

	review, err := ctrl.reviewService.CreateReview(c.Request.Context(), service.CreateReviewInput{
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondReviewError(c, log, err, map[string]interface{}{
			"book_id": req.BookID,
		})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews 도서별 리뷰 목록
// GET /reviews/:book_id
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	bookID := c.Param("book_id")

	reviews, err := ctrl.reviewService.GetReviews(c.Request.Context(), bookID)
	if err != nil {
		respondReviewError(c, log, err, map[string]interface{}{
			"book_id": bookID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// UpdateReview 리뷰 수정
// PUT /reviews/:review_id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	reviewID := c.Param("review_id")

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update review request", map[string]interface{}{
			"review_id": reviewID,
			"error":     err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "Invalid review")
		return
	}

	err := ctrl.reviewService.UpdateReview(c.Request.Context(), reviewID, service.UpdateReviewInput{
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondReviewError(c, log, err, map[string]interface{}{
			"review_id": reviewID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review successfully updated",
	})
}

// DeleteReview 리뷰 삭제
// DELETE /reviews/:review_id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	reviewID := c.Param("review_id")

	if err := ctrl.reviewService.DeleteReview(c.Request.Context(), reviewID); err != nil {
		respondReviewError(c, log, err, map[string]interface{}{
			"review_id": reviewID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}
