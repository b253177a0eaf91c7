// Package psqltest loads YAML fixtures into a PostgreSQL database
// for integration tests.
package psqltest

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/romanyx/polluter"
)

// Pollute inserts the rows described by fixtures into db.
// Top level keys are table names, each holding a list of rows.
func Pollute(db *sql.DB, fixtures io.Reader) error {
	err := polluter.New(polluter.PostgresEngine(db)).Pollute(fixtures)
	if err != nil {
		return fmt.Errorf("pollute: %w", err)
	}

	return nil
}

// PolluteString is Pollute reading fixtures from a string.
func PolluteString(db *sql.DB, fixtures string) error {
	return Pollute(db, strings.NewReader(fixtures))
}
