package model

import (
	"time"
)

// Wishlist is a user's named set of book titles.
type Wishlist struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	UserID    string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Books     []WishlistBook `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

// Titles returns the book titles in the order they were added.
func (w *Wishlist) Titles() []string {
	titles := make([]string, 0, len(w.Books))
	for _, book := range w.Books {
		titles = append(titles, book.BookTitle)
	}
	return titles
}

type WishlistBook struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	WishlistID uint      `gorm:"not null;uniqueIndex:idx_wishlist_books_title" json:"-"`
	BookTitle  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_wishlist_books_title" json:"book_title"`
	CreatedAt  time.Time `json:"created_at"`
}

func (WishlistBook) TableName() string {
	return "wishlist_books"
}
