package money

import (
	"errors"
)

var (
	// ErrInvalidValue is returned when an unexpected value
	// is given to a Money constructor.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidCurrency is returned when a currency code
	// is not a known ISO 4217 code.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrCurrencyMismatch is returned when two money values
	// with different currencies are combined.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrUnsupportedOperand is returned when an operation
	// is not defined for the given operand.
	ErrUnsupportedOperand = errors.New("unsupported operand")

	// ErrNonMoneyDivision is returned when a plain number is
	// divided by a money value.
	ErrNonMoneyDivision = errors.New(
		"cannot divide a non-money value by a money value",
	)

	// ErrDivisionByZero is returned when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidFormatOption is returned for unknown format option
	// keys or values that cannot be parsed.
	ErrInvalidFormatOption = errors.New("invalid format option")

	// ErrConverterNotConfigured is returned when auto conversion is
	// enabled but the environment has no Converter.
	ErrConverterNotConfigured = errors.New("converter not configured")
)
