package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrUnavailable marks a store failure the caller may retry later:
// timeouts, dropped connections, a locked database file.
var ErrUnavailable = errors.New("store unavailable")

// Failures where the statement never reached the server. Safe to retry
// even for non-idempotent writes.
var retryableMarkers = []string{
	"connection refused",
	"database is locked",
	"too many connections",
	"the database system is starting up",
}

// Failures where the statement may or may not have been applied. These
// surface as ErrUnavailable without a retry.
var ambiguousMarkers = []string{
	"connection reset",
	"broken pipe",
	"unexpected eof",
}

// Run executes fn against a context-bound session. Each attempt gets its
// own query timeout. Failures that guarantee nothing was sent are retried
// up to maxRetries times with linear backoff; all store failures are
// reported as ErrUnavailable.
func (d *Database) Run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying database operation", map[string]interface{}{
				"operation": op,
				"attempt":   attempt,
				"error":     err.Error(),
			})
			select {
			case <-ctx.Done():
				return classify(ctx.Err())
			case <-time.After(time.Duration(attempt) * d.retryBackoff):
			}
		}

		err = d.attempt(ctx, fn)
		if err == nil || !isRetryable(err) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return classify(err)
}

// Transaction runs fn inside a database transaction with the same
// timeout and retry policy as Run. The whole transaction is retried.
func (d *Database) Transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return d.Run(ctx, op, func(tx *gorm.DB) error {
		return tx.Transaction(fn)
	})
}

func (d *Database) attempt(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()
	return fn(d.conn.WithContext(ctx))
}

// isRetryable reports whether err proves the statement was never
// executed, so running it again cannot apply it twice.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return containsAny(err, retryableMarkers)
}

// isUnavailable reports whether err is a store failure of any kind,
// retryable or ambiguous.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if isRetryable(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return containsAny(err, ambiguousMarkers)
}

func containsAny(err error, markers []string) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
