package psqldocker

import (
	"time"

	"github.com/ory/dockertest/v3"
)

type options struct {
	containerName     string
	imageTag          string
	sqls              []string
	pool              *dockertest.Pool
	poolEndpoint      string
	expirationSeconds uint
	maxWait           time.Duration
}

func defaultOptions() options {
	const (
		defaultExpiration = 120
		defaultMaxWait    = 30 * time.Second
	)

	return options{
		imageTag:          "16-alpine",
		expirationSeconds: defaultExpiration,
		maxWait:           defaultMaxWait,
	}
}

// Option configures a Container.
type Option func(*options)

// WithContainerName names the container.
func WithContainerName(name string) Option {
	return func(o *options) {
		o.containerName = name
	}
}

// WithImageTag sets the tag of the postgres image.
func WithImageTag(tag string) Option {
	return func(o *options) {
		o.imageTag = tag
	}
}

// WithSQL adds statements executed once the database is up.
func WithSQL(sqls ...string) Option {
	return func(o *options) {
		o.sqls = append(o.sqls, sqls...)
	}
}

// WithPool runs the container in an existing pool.
func WithPool(pool *dockertest.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// WithPoolEndpoint sets the Docker endpoint of a new pool.
func WithPoolEndpoint(endpoint string) Option {
	return func(o *options) {
		o.poolEndpoint = endpoint
	}
}

// WithExpiration removes the container after seconds.
func WithExpiration(seconds uint) Option {
	return func(o *options) {
		o.expirationSeconds = seconds
	}
}

// WithMaxWait bounds the time spent waiting for the database.
func WithMaxWait(d time.Duration) Option {
	return func(o *options) {
		o.maxWait = d
	}
}
