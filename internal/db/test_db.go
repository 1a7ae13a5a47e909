package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing. The pool
// is pinned to one connection because every new SQLite connection to
// ":memory:" would open a separate, empty database.
func SetupTestDB() (*Database, error) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get test database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database := New(conn, 2*time.Second, 0)
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return database, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(database *Database) {
	if err := database.Close(); err != nil {
		log.Printf("Failed to close test database: %v", err)
	}
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(database *Database) error {
	tables := []string{"reviews", "books", "authors", "wishlist_books", "wishlists", "cart_line_items", "shopping_carts", "users"}
	for _, table := range tables {
		if err := database.conn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
