package money

import (
	"fmt"

	"github.com/bojanz/currency"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount in a given currency,
// carrying formatting metadata.
//
// Money is immutable: every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string

	// display precision hint, only meaningful when
	// hasDecimalPlaces is true.
	decimalPlaces    int32
	hasDecimalPlaces bool

	// per value formatting overrides.
	formatOptions FormatOptions

	// localization override, only meaningful when
	// hasLocalization is true.
	localized       bool
	hasLocalization bool

	// environment the value was created in, nil for the default one.
	env *Environment
}

// Option configures the metadata of a new Money.
type Option func(*Money)

// WithDecimalPlaces sets the display precision hint.
func WithDecimalPlaces(places int32) Option {
	return func(m *Money) {
		m.decimalPlaces = places
		m.hasDecimalPlaces = true
	}
}

// WithFormatOptions sets per value formatting overrides.
// The options are copied.
func WithFormatOptions(opts FormatOptions) Option {
	return func(m *Money) {
		m.formatOptions = opts.clone()
	}
}

// WithLocalization overrides the environment UseL10N setting
// for this value.
func WithLocalization(enabled bool) Option {
	return func(m *Money) {
		m.localized = enabled
		m.hasLocalization = true
	}
}

// New creates a new Money in the default environment.
// The currency must be a known ISO 4217 code.
func New(
	amount decimal.Decimal,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	return newMoney(nil, amount, currencyCode, opts...)
}

// NewFromString creates a new Money from a decimal string,
// eg. "97.23".
func NewFromString(
	amount string,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	if amount == "" {
		return Money{}, fmt.Errorf("%w: empty string value", ErrInvalidValue)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf(
			"%w: string \"%s\" is not valid",
			ErrInvalidValue,
			amount,
		)
	}

	return New(d, currencyCode, opts...)
}

// NewFromInt creates a new Money from an integer amount of units.
func NewFromInt(
	amount int64,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	return New(decimal.NewFromInt(amount), currencyCode, opts...)
}

// Must returns m if err is nil and panics otherwise.
func Must(m Money, err error) Money {
	if err != nil {
		panic(err)
	}

	return m
}

// ValidateCurrency returns ErrInvalidCurrency if currencyCode
// is not a known ISO 4217 code.
func ValidateCurrency(currencyCode string) error {
	if !currency.IsValid(currencyCode) {
		return fmt.Errorf(
			"%w: \"%s\"",
			ErrInvalidCurrency,
			currencyCode,
		)
	}

	return nil
}

func newMoney(
	env *Environment,
	amount decimal.Decimal,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	if err := ValidateCurrency(currencyCode); err != nil {
		return Money{}, err
	}

	m := Money{
		amount:   amount,
		currency: currencyCode,
		env:      env,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// DecimalPlaces returns the display precision hint, falling back
// to the environment default when it was never set.
func (m Money) DecimalPlaces() int32 {
	if m.hasDecimalPlaces {
		return m.decimalPlaces
	}

	return m.environment().settings.DecimalPlaces
}

// HasDecimalPlaces reports whether the precision hint was set
// explicitly or inherited through an operation. A value without it
// uses the environment default, also when taking part in an operation.
func (m Money) HasDecimalPlaces() bool {
	return m.hasDecimalPlaces
}

// FormatOptions returns the per value formatting overrides.
func (m Money) FormatOptions() FormatOptions {
	return m.formatOptions
}

// IsLocalized reports whether the value should be rendered with
// localization. Unless overridden with WithLocalization,
// the environment UseL10N setting is used.
func (m Money) IsLocalized() bool {
	if m.hasLocalization {
		return m.localized
	}

	return m.environment().settings.UseL10N
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal returns true if m and x have the same currency and amount.
// Metadata is not compared.
func (m Money) Equal(x Money) bool {
	return m.currency == x.currency && m.amount.Equal(x.amount)
}

func (m Money) environment() *Environment {
	if m.env == nil {
		return defaultEnvironment
	}

	return m.env
}

// derive returns a new value with the same currency and environment
// and no metadata.
func (m Money) derive(amount decimal.Decimal) Money {
	return Money{
		amount:   amount,
		currency: m.currency,
		env:      m.env,
	}
}
