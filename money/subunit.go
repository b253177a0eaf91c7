package money

import (
	"fmt"
	"math/big"

	"github.com/bojanz/currency"
	"github.com/shopspring/decimal"
)

// NewFromSubunits creates a new Money from a value stored in the
// smallest denomination of the currency.
// Example: for dollars the value is in cents: 9723 is 97.23 USD.
func NewFromSubunits(
	value *big.Int,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	if value == nil {
		return Money{}, fmt.Errorf("%w: nil value", ErrInvalidValue)
	}

	subunitDigits, ok := currency.GetDigits(currencyCode)
	if !ok {
		return Money{}, fmt.Errorf(
			"%w: \"%s\"",
			ErrInvalidCurrency,
			currencyCode,
		)
	}

	return New(
		decimal.NewFromBigInt(value, -int32(subunitDigits)),
		currencyCode,
		opts...,
	)
}

// Subunits returns the amount in the smallest denomination of
// the currency. Fractions of a subunit are truncated.
func (m Money) Subunits() *big.Int {
	subunitDigits, ok := currency.GetDigits(m.currency)
	if !ok {
		return m.amount.BigInt()
	}

	return m.amount.Shift(int32(subunitDigits)).BigInt()
}
