package model

import (
	"time"
)

// ShoppingCart is the single cart owned by a user.
type ShoppingCart struct {
	ID        uint       `gorm:"primarykey" json:"-"`
	UserID    string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// CartItem is one line of a cart. ItemID is unique within a cart; the
// primary key orders lines by insertion.
type CartItem struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	CartID       uint      `gorm:"not null;uniqueIndex:idx_cart_line_items_cart_item" json:"-"`
	ItemID       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_cart_line_items_cart_item" json:"item_id"`
	ItemName     string    `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PricePerItem float64   `gorm:"not null;default:0" json:"price_per_item"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (CartItem) TableName() string {
	return "cart_line_items"
}

// Total returns the sum of quantity times unit price over all lines.
func (c *ShoppingCart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.PricePerItem * float64(item.Quantity)
	}
	return total
}

// FindItem returns the line with the given item ID, if any.
func (c *ShoppingCart) FindItem(itemID string) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}
