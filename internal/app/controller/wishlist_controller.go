package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	apperrors "github.com/ikkim/bookstore-backend/internal/errors"
	"github.com/ikkim/bookstore-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type CreateWishlistRequest struct {
	UserID string   `json:"user_id" binding:"required,max=100"`
	Name   string   `json:"name" binding:"required,max=255"`
	Books  []string `json:"books"`
}

type AddBookRequest struct {
	BookTitle string `json:"book_title" binding:"required,max=255"`
}

// CreateWishlist creates a wishlist for a user
// POST /wishlist/
func (ctrl *WishlistController) CreateWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create wishlist request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "user_id and name are required")
		return
	}

	_, err := ctrl.wishlistService.CreateWishlist(c.Request.Context(), req.UserID, req.Name, req.Books)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWishlist):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		case errors.Is(err, service.ErrWishlistAlreadyExists):
			apperrors.Conflict(c, apperrors.WishlistAlreadyExists, "Wishlist already exists for this user")
		default:
			log.Error("Failed to create wishlist", err, map[string]interface{}{
				"user_id": req.UserID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create wishlist")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Wishlist created successfully",
	})
}

// GetWishlist returns a user's wishlist
// GET /wishlist/:user_id
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("user_id")

	wishlist, err := ctrl.wishlistService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrWishlistNotFound) {
			apperrors.NotFound(c, apperrors.WishlistNotFound, "Wishlist not found")
			return
		}
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": wishlist.UserID,
		"name":    wishlist.Name,
		"books":   wishlist.Titles(),
	})
}

// AddBook adds a title to the wishlist
// POST /wishlist/:user_id/add_book
func (ctrl *WishlistController) AddBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("user_id")

	var req AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add book request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "book_title is required")
		return
	}

	if err := ctrl.wishlistService.AddBook(c.Request.Context(), userID, req.BookTitle); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWishlist):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		case errors.Is(err, service.ErrWishlistNotFound):
			apperrors.NotFound(c, apperrors.WishlistNotFound, "Wishlist not found")
		case errors.Is(err, service.ErrBookAlreadyInWishlist):
			apperrors.Conflict(c, apperrors.WishlistBookExists, "Book is already in the wishlist")
		default:
			log.Error("Failed to add book to wishlist", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add book")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Book added to wishlist successfully",
	})
}

// DeleteWishlist deletes a user's wishlist
// DELETE /wishlist/:user_id
func (ctrl *WishlistController) DeleteWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("user_id")

	if err := ctrl.wishlistService.DeleteWishlist(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrWishlistNotFound) {
			apperrors.NotFound(c, apperrors.WishlistNotFound, "Wishlist not found")
			return
		}
		log.Error("Failed to delete wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist deleted successfully",
	})
}
