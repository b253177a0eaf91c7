// Package psqlutil opens PostgreSQL connections through the pgx driver,
// retrying while the database is not reachable yet.
package psqlutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	// import for init function.
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// OpenOption configures how a connection is opened.
type OpenOption func(o *openOptions)

type openOptions struct {
	attempts     uint
	delay        time.Duration
	maxOpenConns int
}

func defaultOpenOptions() openOptions {
	return openOptions{
		attempts: 5,
		delay:    2 * time.Second,
	}
}

// WithAttempts sets how many times the database is tried
// before giving up.
func WithAttempts(attempts uint) OpenOption {
	return func(o *openOptions) {
		o.attempts = attempts
	}
}

// WithDelay sets the wait between two attempts.
func WithDelay(delay time.Duration) OpenOption {
	return func(o *openOptions) {
		o.delay = delay
	}
}

// WithMaxOpenConns limits the connections of the pool.
// Zero means no limit.
func WithMaxOpenConns(n int) OpenOption {
	return func(o *openOptions) {
		o.maxOpenConns = n
	}
}

// SQLOpen opens a *sql.DB with the pgx driver and pings it.
func SQLOpen(
	ctx context.Context,
	postgresDSN string,
	opts ...OpenOption,
) (*sql.DB, error) {
	options := defaultOpenOptions()

	for _, opt := range opts {
		opt(&options)
	}

	var db *sql.DB

	err := retry.Do(func() error {
		conn, err := sql.Open("pgx", postgresDSN)
		if err != nil {
			return fmt.Errorf("open: %w", err)
		}

		err = conn.PingContext(ctx)
		if err != nil {
			_ = conn.Close()

			return fmt.Errorf("ping: %w", err)
		}

		db = conn

		return nil
	},
		retry.Attempts(options.attempts),
		retry.Delay(options.delay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(options.maxOpenConns)

	return db, nil
}

// GormOpen opens the database with SQLOpen and returns a *gorm.DB
// logging its queries through zapLogger.
func GormOpen(
	ctx context.Context,
	zapLogger *zap.Logger,
	postgresDSN string,
	opts ...OpenOption,
) (*gorm.DB, error) {
	db, err := SQLOpen(ctx, postgresDSN, opts...)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 zapgorm2.New(zapLogger),
		})
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return gormDB, nil
}
