package repository

import (
	"context"
	"time"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	Create(ctx context.Context, cart *model.ShoppingCart) error
	FindByUserID(ctx context.Context, userID string) (*model.ShoppingCart, error)
	FindByUserIDWithItems(ctx context.Context, userID string) (*model.ShoppingCart, error)
	MergeItem(ctx context.Context, cartID uint, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID uint, itemID string, quantity int) (int64, error)
	DeleteItem(ctx context.Context, cartID uint, itemID string) (int64, error)
	Delete(ctx context.Context, cartID uint) error
}

type cartRepository struct {
	db *db.Database
}

func NewCartRepository(database *db.Database) CartRepository {
	return &cartRepository{db: database}
}

func (r *cartRepository) Create(ctx context.Context, cart *model.ShoppingCart) error {
	logger.Debug("Creating shopping cart in database", map[string]interface{}{
		"user_id": cart.UserID,
	})

	err := r.db.Run(ctx, "cart.create", func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(cart).Error
	})
	if err != nil {
		logger.Error("Failed to create shopping cart in database", err, map[string]interface{}{
			"user_id": cart.UserID,
		})
		return err
	}

	logger.Debug("Shopping cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": cart.UserID,
	})
	return nil
}

// FindByUserID loads the cart header only. Returns gorm.ErrRecordNotFound
// when the user has no cart.
func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	var cart model.ShoppingCart
	err := r.db.Run(ctx, "cart.find", func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).First(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByUserIDWithItems loads the cart and its lines in insertion order.
func (r *cartRepository) FindByUserIDWithItems(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	logger.Debug("Finding shopping cart with items in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.ShoppingCart
	err := r.db.Run(ctx, "cart.find_with_items", func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).
			Preload("Items", func(q *gorm.DB) *gorm.DB {
				return q.Order("cart_line_items.id ASC")
			}).
			First(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}

	logger.Debug("Shopping cart found in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": userID,
		"count":   len(cart.Items),
	})
	return &cart, nil
}

// MergeItem appends item to the cart, or adds its quantity to the existing
// line with the same item ID. It is a single INSERT ... ON CONFLICT
// statement, so concurrent merges of the same new item never produce two
// lines. Name and price of an existing line are left untouched.
func (r *cartRepository) MergeItem(ctx context.Context, cartID uint, item *model.CartItem) error {
	logger.Debug("Merging cart item in database", map[string]interface{}{
		"cart_id":  cartID,
		"item_id":  item.ItemID,
		"quantity": item.Quantity,
	})

	line := model.CartItem{
		CartID:       cartID,
		ItemID:       item.ItemID,
		ItemName:     item.ItemName,
		Quantity:     item.Quantity,
		PricePerItem: item.PricePerItem,
	}

	err := r.db.Run(ctx, "cart.merge_item", func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_line_items.quantity + excluded.quantity"),
				"updated_at": time.Now(),
			}),
		}).Create(&line).Error
	})
	if err != nil {
		logger.Error("Failed to merge cart item in database", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": item.ItemID,
		})
		return err
	}
	return nil
}

// UpdateItemQuantity sets the quantity of one line and reports how many
// lines matched; zero means the item is not in the cart.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID uint, itemID string, quantity int) (int64, error) {
	logger.Debug("Updating cart item quantity in database", map[string]interface{}{
		"cart_id":  cartID,
		"item_id":  itemID,
		"quantity": quantity,
	})

	var affected int64
	err := r.db.Run(ctx, "cart.update_quantity", func(tx *gorm.DB) error {
		result := tx.Model(&model.CartItem{}).
			Where("cart_id = ? AND item_id = ?", cartID, itemID).
			Updates(map[string]interface{}{
				"quantity":   quantity,
				"updated_at": time.Now(),
			})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to update cart item quantity in database", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		return 0, err
	}
	return affected, nil
}

// DeleteItem removes one line and reports how many lines were removed.
func (r *cartRepository) DeleteItem(ctx context.Context, cartID uint, itemID string) (int64, error) {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_id": cartID,
		"item_id": itemID,
	})

	var affected int64
	err := r.db.Run(ctx, "cart.delete_item", func(tx *gorm.DB) error {
		result := tx.Where("cart_id = ? AND item_id = ?", cartID, itemID).Delete(&model.CartItem{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		return 0, err
	}
	return affected, nil
}

// Delete removes the cart and all of its lines in one transaction.
func (r *cartRepository) Delete(ctx context.Context, cartID uint) error {
	logger.Debug("Deleting shopping cart from database", map[string]interface{}{
		"cart_id": cartID,
	})

	err := r.db.Transaction(ctx, "cart.delete", func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.ShoppingCart{}, cartID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete shopping cart from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}
