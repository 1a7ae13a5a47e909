package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/bookstore-backend/config"
	appLogger "github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultQueryTimeout = 5 * time.Second
	defaultRetryBackoff = 50 * time.Millisecond
)

// Database is the store client shared by all repositories. It owns the
// gorm connection pool and the per-statement timeout and retry policy.
type Database struct {
	conn         *gorm.DB
	queryTimeout time.Duration
	maxRetries   int
	retryBackoff time.Duration
}

// Open connects to the configured database and applies pool settings.
func Open(cfg *config.DatabaseConfig) (*Database, error) {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"driver":   cfg.Driver,
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Use silent mode, we'll use our own logger
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"max_idle_conns": cfg.MaxIdleConns,
		"max_open_conns": cfg.MaxOpenConns,
		"query_timeout":  cfg.QueryTimeout.String(),
		"max_retries":    cfg.MaxRetries,
	})

	return New(conn, cfg.QueryTimeout, cfg.MaxRetries), nil
}

// New wraps an existing gorm connection.
func New(conn *gorm.DB, queryTimeout time.Duration, maxRetries int) *Database {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Database{
		conn:         conn,
		queryTimeout: queryTimeout,
		maxRetries:   maxRetries,
		retryBackoff: defaultRetryBackoff,
	}
}

// Conn returns the underlying gorm handle without timeout or retry.
func (d *Database) Conn() *gorm.DB {
	return d.conn
}

// Ping checks connectivity within the query timeout.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
