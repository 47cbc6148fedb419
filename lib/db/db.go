package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/omni-data/gridline/lib/jitter"
)

const (
	maxAttempts     = 3
	sleepIntervalMs = 500
)

type Store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	IsRetryableError(err error) bool
}

type storeWrapper struct {
	*sql.DB
}

func (s *storeWrapper) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var result sql.Result
	var err error
	for attempts := 0; attempts < maxAttempts; attempts++ {
		if attempts > 0 {
			sleepDuration := jitter.Jitter(sleepIntervalMs, jitter.DefaultMaxMs, attempts-1)
			slog.Warn("Failed to execute the query, retrying...",
				slog.Any("err", err),
				slog.Duration("sleep", sleepDuration),
				slog.Int("attempts", attempts),
			)

			if sleepErr := sleepWithContext(ctx, sleepDuration); sleepErr != nil {
				return nil, sleepErr
			}
		}

		result, err = s.DB.ExecContext(ctx, query, args...)
		if err == nil || !s.IsRetryableError(err) {
			break
		}
	}

	return result, err
}

// sleepWithContext waits out the backoff, returning early if ctx ends first
// so a cancelled request does not sit through the remaining retries.
func sleepWithContext(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *storeWrapper) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.DB.QueryContext(ctx, query, args...)
}

func (s *storeWrapper) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return s.DB.BeginTx(ctx, opts)
}

func (s *storeWrapper) IsRetryableError(err error) bool {
	return isRetryableError(err)
}

func Open(driverName, dsn string) (Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to start a SQL client for driver %q: %w", driverName, err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate the DB connection for driver %q: %w", driverName, err)
	}

	return &storeWrapper{DB: db}, nil
}

// WrapForTest returns a [Store] directly over db, skipping the connection check.
func WrapForTest(db *sql.DB) Store {
	return &storeWrapper{DB: db}
}
