package db

import (
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/pkg/logger"
)

// Models lists every table owned by the service.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.ShoppingCart{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistBook{},
		&model.Book{},
		&model.Author{},
		&model.Review{},
	}
}

// Migrate runs database migrations
func (d *Database) Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := d.conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
