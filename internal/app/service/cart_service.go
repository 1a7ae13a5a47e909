package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/lock"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound      = errors.New("shopping cart not found")
	ErrCartAlreadyExists = errors.New("shopping cart already exists")
	ErrCartItemNotFound  = errors.New("item not found in cart")
	ErrInvalidCartItem   = errors.New("invalid cart item")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")

	// ErrStoreUnavailable is returned for timeouts and connectivity
	// failures of the database or the lock backend. Callers may retry.
	ErrStoreUnavailable = db.ErrUnavailable
)

// Column widths of cart_line_items.
const (
	MaxItemIDLength   = 100
	MaxItemNameLength = 255
)

type CartService interface {
	CreateCart(ctx context.Context, userID string) (*model.ShoppingCart, error)
	GetCart(ctx context.Context, userID string) (*model.ShoppingCart, error)
	AddItem(ctx context.Context, userID string, item model.CartItem) (*model.ShoppingCart, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	DeleteCart(ctx context.Context, userID string) error
}

type cartService struct {
	cartRepo repository.CartRepository
	userRepo repository.UserRepository
	locker   lock.Locker
}

// NewCartService wires the cart manager. A nil locker falls back to an
// in-process keyed mutex, which is enough for a single instance.
func NewCartService(
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	locker lock.Locker,
) CartService {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return &cartService{
		cartRepo: cartRepo,
		userRepo: userRepo,
		locker:   locker,
	}
}

func cartLockKey(userID string) string {
	return "cart:" + userID
}

// withCartLock runs fn while holding the user's cart lock.
func (s *cartService) withCartLock(ctx context.Context, userID string, fn func() error) error {
	release, err := s.locker.Lock(ctx, cartLockKey(userID))
	if err != nil {
		logger.Error("Failed to acquire cart lock", err, map[string]interface{}{
			"user_id": userID,
		})
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer release()
	return fn()
}

// findCart loads the cart header, mapping a missing row to ErrCartNotFound.
func (s *cartService) findCart(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch shopping cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return cart, nil
}

func (s *cartService) CreateCart(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	logger.Info("Creating shopping cart", map[string]interface{}{
		"user_id": userID,
	})

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Warn("Cannot create cart: user not found", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrUserNotFound
	}

	var cart *model.ShoppingCart
	err = s.withCartLock(ctx, userID, func() error {
		if _, err := s.findCart(ctx, userID); err == nil {
			return ErrCartAlreadyExists
		} else if !errors.Is(err, ErrCartNotFound) {
			return err
		}

		cart = &model.ShoppingCart{UserID: userID, Items: []model.CartItem{}}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCartAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartAlreadyExists) {
			logger.Warn("Cannot create cart: cart already exists", map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	logger.Info("Shopping cart created successfully", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})
	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	logger.Debug("Fetching shopping cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserIDWithItems(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch shopping cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Shopping cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cart.Items),
	})
	return cart, nil
}

// AddItem merge-adds item: an existing line with the same item ID has its
// quantity increased, otherwise the item is appended. Returns the cart
// after the change.
func (s *cartService) AddItem(ctx context.Context, userID string, item model.CartItem) (*model.ShoppingCart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":  userID,
		"item_id":  item.ItemID,
		"quantity": item.Quantity,
	})

	if err := validateCartItem(&item); err != nil {
		logger.Warn("Cannot add to cart: invalid item", map[string]interface{}{
			"user_id": userID,
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
		return nil, err
	}

	err := s.withCartLock(ctx, userID, func() error {
		cart, err := s.findCart(ctx, userID)
		if err != nil {
			return err
		}
		return s.cartRepo.MergeItem(ctx, cart.ID, &item)
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			logger.Warn("Cannot add to cart: cart not found", map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"user_id": userID,
		"item_id": item.ItemID,
	})
	return s.GetCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})

	err := s.withCartLock(ctx, userID, func() error {
		cart, err := s.findCart(ctx, userID)
		if err != nil {
			return err
		}
		removed, err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if removed == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrCartItemNotFound) {
			logger.Warn("Cannot remove cart item", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
				"reason":  err.Error(),
			})
		}
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})
	return nil
}

// UpdateQuantity replaces the quantity of an existing line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})

	if quantity <= 0 {
		logger.Warn("Cannot update cart item: non-positive quantity", map[string]interface{}{
			"user_id":  userID,
			"item_id":  itemID,
			"quantity": quantity,
		})
		return ErrInvalidQuantity
	}

	err := s.withCartLock(ctx, userID, func() error {
		cart, err := s.findCart(ctx, userID)
		if err != nil {
			return err
		}
		matched, err := s.cartRepo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity)
		if err != nil {
			return err
		}
		if matched == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrCartItemNotFound) {
			logger.Warn("Cannot update cart item", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
				"reason":  err.Error(),
			})
		}
		return err
	}

	logger.Info("Cart item updated successfully", map[string]interface{}{
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})
	return nil
}

func (s *cartService) DeleteCart(ctx context.Context, userID string) error {
	logger.Info("Deleting shopping cart", map[string]interface{}{
		"user_id": userID,
	})

	err := s.withCartLock(ctx, userID, func() error {
		cart, err := s.findCart(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.cartRepo.Delete(ctx, cart.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			logger.Warn("Cannot delete cart: cart not found", map[string]interface{}{
				"user_id": userID,
			})
		}
		return err
	}

	logger.Info("Shopping cart deleted", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func validateCartItem(item *model.CartItem) error {
	item.ItemID = strings.TrimSpace(item.ItemID)
	item.ItemName = strings.TrimSpace(item.ItemName)

	switch {
	case item.ItemID == "":
		return fmt.Errorf("%w: item_id is required", ErrInvalidCartItem)
	case item.ItemName == "":
		return fmt.Errorf("%w: item_name is required", ErrInvalidCartItem)
	case !utf8.ValidString(item.ItemID) || !utf8.ValidString(item.ItemName):
		return fmt.Errorf("%w: item_id and item_name must be valid UTF-8", ErrInvalidCartItem)
	case utf8.RuneCountInString(item.ItemID) > MaxItemIDLength:
		return fmt.Errorf("%w: item_id must be at most %d characters", ErrInvalidCartItem, MaxItemIDLength)
	case utf8.RuneCountInString(item.ItemName) > MaxItemNameLength:
		return fmt.Errorf("%w: item_name must be at most %d characters", ErrInvalidCartItem, MaxItemNameLength)
	case item.Quantity <= 0:
		return fmt.Errorf("%w: %v", ErrInvalidCartItem, ErrInvalidQuantity)
	case item.PricePerItem < 0 || math.IsNaN(item.PricePerItem) || math.IsInf(item.PricePerItem, 0):
		return fmt.Errorf("%w: price_per_item must be a non-negative number", ErrInvalidCartItem)
	}
	return nil
}
