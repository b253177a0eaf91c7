package psqlutil

import (
	"fmt"
)

// ConnectionConfig is a PostgreSQL connection configuration.
// It can be loaded from POSTGRES_ prefixed environment variables.
type ConnectionConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`

	// ConnectTimeout is in seconds, zero waits indefinitely.
	ConnectTimeout uint `env:"CONNECT_TIMEOUT" envDefault:"10"`
}

// DSN returns a PostgreSQL Data Source Name.
func (c ConnectionConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host,
		c.User,
		c.Password,
		c.DBName,
		c.Port,
		c.SSLMode,
	)

	if c.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", c.ConnectTimeout)
	}

	return dsn
}
