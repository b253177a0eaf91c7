// Package psqldocker runs throwaway PostgreSQL containers
// for integration tests.
package psqldocker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/purposeinplay/go-money/psqlutil"
)

// ensure Container implements the io.Closer interface.
var _ io.Closer = (*Container)(nil)

// ErrWithPoolAndWithPoolEndpoint is returned when both
// WithPool and WithPoolEndpoint options are given to the
// NewContainer constructor.
var ErrWithPoolAndWithPoolEndpoint = errors.New(
	"with pool and with pool endpoint are mutually exclusive",
)

const dbPort = "5432"

// Container represents a Docker container
// running a PostgreSQL image.
type Container struct {
	cfg  psqlutil.ConnectionConfig
	sqls []string

	runOptions   *dockertest.RunOptions
	expiration   uint
	res          *dockertest.Resource
	pool         *dockertest.Pool
	poolEndpoint string
	maxWait      time.Duration
}

// NewContainer returns a container running a database named dbName,
// owned by user. Start must be called before use.
func NewContainer(
	user,
	password,
	dbName string,
	opts ...Option,
) *Container {
	options := defaultOptions()

	for _, opt := range opts {
		opt(&options)
	}

	return &Container{
		cfg: psqlutil.ConnectionConfig{
			Host:     "localhost",
			User:     user,
			Password: password,
			DBName:   dbName,
			SSLMode:  "disable",
		},
		sqls: options.sqls,
		runOptions: &dockertest.RunOptions{
			Name:       options.containerName,
			Repository: "postgres",
			Tag:        options.imageTag,
			Env: []string{
				"POSTGRES_PASSWORD=" + password,
				"POSTGRES_USER=" + user,
				"POSTGRES_DB=" + dbName,
			},
		},
		expiration:   options.expirationSeconds,
		pool:         options.pool,
		poolEndpoint: options.poolEndpoint,
		maxWait:      options.maxWait,
	}
}

// Start starts the container and waits until the database
// accepts connections.
func (c *Container) Start(ctx context.Context) error {
	pool, err := newPool(c.pool, c.poolEndpoint, c.maxWait)
	if err != nil {
		return err
	}

	res, err := pool.RunWithOptions(
		c.runOptions,
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{
				Name: "no",
			}
		},
	)
	if err != nil {
		return fmt.Errorf("start container: %w", err)
	}

	c.res = res

	_ = res.Expire(c.expiration)

	c.cfg.Port = res.GetPort(dbPort + "/tcp")

	err = pool.Retry(func() error {
		return c.exec(ctx)
	})
	if err != nil {
		_ = res.Close()

		return fmt.Errorf("ping db: %w", err)
	}

	err = c.exec(ctx, c.sqls...)
	if err != nil {
		_ = res.Close()

		return fmt.Errorf("execute sqls: %w", err)
	}

	return nil
}

// Config returns the connection configuration of the
// database running inside the container.
func (c *Container) Config() psqlutil.ConnectionConfig {
	return c.cfg
}

// Close removes the Docker container.
func (c *Container) Close() error {
	if c.res == nil {
		return nil
	}

	return c.res.Close()
}

// exec connects to the database and runs sqls.
// Without statements it only pings the database.
func (c *Container) exec(ctx context.Context, sqls ...string) error {
	db, err := psqlutil.SQLOpen(ctx, c.cfg.DSN(), psqlutil.WithAttempts(1))
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	for i, q := range sqls {
		_, err = db.ExecContext(ctx, q)
		if err != nil {
			return fmt.Errorf("execute sql %d: %w", i, err)
		}
	}

	return nil
}

func newPool(
	pool *dockertest.Pool,
	poolEndpoint string,
	maxWait time.Duration,
) (*dockertest.Pool, error) {
	if pool != nil && poolEndpoint != "" {
		return nil, ErrWithPoolAndWithPoolEndpoint
	}

	if pool == nil {
		p, err := dockertest.NewPool(poolEndpoint)
		if err != nil {
			return nil, fmt.Errorf("new pool: %w", err)
		}

		pool = p
	}

	pool.MaxWait = maxWait

	return pool, nil
}
