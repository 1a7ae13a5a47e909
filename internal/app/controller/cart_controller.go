package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	apperrors "github.com/ikkim/bookstore-backend/internal/errors"
	"github.com/ikkim/bookstore-backend/internal/middleware"
	"github.com/ikkim/bookstore-backend/pkg/logger"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	ItemID       string  `json:"item_id" binding:"required,max=100"`
	ItemName     string  `json:"item_name" binding:"required,max=255"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	PricePerItem float64 `json:"price_per_item" binding:"gte=0"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// respondCartError maps cart service errors to HTTP responses.
func respondCartError(c *gin.Context, log *logger.Logger, err error, fields map[string]interface{}) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
	case errors.Is(err, service.ErrCartNotFound):
		apperrors.NotFound(c, apperrors.CartNotFound, "Shopping cart not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Item not found in cart")
	case errors.Is(err, service.ErrCartAlreadyExists):
		apperrors.Conflict(c, apperrors.CartAlreadyExists, "Shopping cart already exists")
	case errors.Is(err, service.ErrInvalidCartItem):
		apperrors.BadRequest(c, apperrors.CartInvalidItem, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "Quantity must be a positive integer")
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error("Cart store unavailable", err, fields)
		apperrors.ServiceUnavailable(c, "")
	default:
		log.Error("Cart operation failed", err, fields)
		apperrors.InternalError(c, "")
	}
}

// CreateCart creates an empty cart for an existing user
// POST /users/:username/shopping_cart/
func (ctrl *CartController) CreateCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("username")

	cart, err := ctrl.cartService.CreateCart(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, log, err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shopping cart created successfully",
		"cart":    cart,
	})
}

// GetCart returns the user's cart with line count and total
// GET /users/:username/shopping_cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("username")

	cart, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, log, err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	total := cart.Total()
	log.Debug("Cart fetched", map[string]interface{}{
		"user_id": userID,
		"count":   len(cart.Items),
		"total":   total,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"count": len(cart.Items),
		"total": total,
	})
}

// AddItem merge-adds an item to the cart
// POST /users/:username/shopping_cart/items/
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("username")

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add cart item request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "Invalid cart item")
		return
	}

	cart, err := ctrl.cartService.AddItem(c.Request.Context(), userID, model.CartItem{
		ItemID:       req.ItemID,
		ItemName:     req.ItemName,
		Quantity:     req.Quantity,
		PricePerItem: req.PricePerItem,
	})
	if err != nil {
		respondCartError(c, log, err, map[string]interface{}{
			"user_id": userID,
			"item_id": req.ItemID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"cart":    cart,
	})
}

// RemoveItem removes a whole line from the cart
// DELETE /users/:username/shopping_cart/items/:item_id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("username")
	itemID := c.Param("item_id")

	if err := ctrl.cartService.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		respondCartError(c, log, err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
	})
}

// UpdateQuantity sets the quantity of a line. The quantity is read from
// the query string first, then from a JSON body.
// PUT /users/:username/shopping_cart/items/:item_id?quantity=N
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("username")
	itemID := c.Param("item_id")

	var quantity int
	if raw, ok := c.GetQuery("quantity"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Invalid quantity query parameter", map[string]interface{}{
				"user_id":  userID,
				"item_id":  itemID,
				"quantity": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Quantity must be an integer")
			return
		}
		quantity = n
	} else {
		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn("Invalid update cart item request", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
				"error":   err.Error(),
			})
			apperrors.RespondWithBindingError(c, err, "Quantity is required")
			return
		}
		quantity = *req.Quantity
	}

	if err := ctrl.cartService.UpdateQuantity(c.Request.Context(), userID, itemID, quantity); err != nil {
		respondCartError(c, log, err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
	})
}

// DeleteCart deletes the cart and all its lines
// DELETE /users/:username/shopping_cart
func (ctrl *CartController) DeleteCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := c.Param("username")

	if err := ctrl.cartService.DeleteCart(c.Request.Context(), userID); err != nil {
		respondCartError(c, log, err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shopping cart deleted successfully",
	})
}
