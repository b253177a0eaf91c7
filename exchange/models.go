// Package exchange converts money between currencies using exchange
// rates fetched from a rates provider and kept in a Store.
//
// Every provider (backend) stores the rates of all currencies against
// its base currency. Rates between two other currencies are derived
// through the base currency.
package exchange

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingRate is returned when no rate is stored
	// for a pair of currencies.
	ErrMissingRate = errors.New("missing rate")

	// ErrBackendNotFound is returned when a backend has
	// never been updated.
	ErrBackendNotFound = errors.New("backend not found")

	// ErrFetchRates is returned when rates cannot be fetched
	// from a provider.
	ErrFetchRates = errors.New("fetch rates")
)

// Backend is a rates provider and the base currency of its rates.
type Backend struct {
	Name         string `gorm:"primaryKey;size:255"`
	BaseCurrency string `gorm:"size:3;not null"`
	LastUpdate   time.Time
}

// TableName sets the gorm table name.
func (Backend) TableName() string {
	return "exchange_backends"
}

// Rate is the number of units of Currency worth one unit of the
// base currency of the backend.
type Rate struct {
	ID          uint            `gorm:"primaryKey"`
	BackendName string          `gorm:"size:255;not null;uniqueIndex:idx_exchange_rates_backend_currency"`
	Currency    string          `gorm:"size:3;not null;uniqueIndex:idx_exchange_rates_backend_currency"`
	Value       decimal.Decimal `gorm:"type:numeric(20,6);not null"`
}

// TableName sets the gorm table name.
func (Rate) TableName() string {
	return "exchange_rates"
}
