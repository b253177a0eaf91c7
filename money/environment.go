package money

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Converter converts money to another currency.
type Converter interface {
	Convert(ctx context.Context, m Money, currencyCode string) (Money, error)
}

// Environment groups the settings and collaborators used by
// money values: the currency converter, the formatter and the logger.
//
// An Environment is read-only after construction and safe
// for concurrent use.
type Environment struct {
	settings  Settings
	converter Converter
	formatter Formatter
	logger    *zap.Logger
}

// EnvironmentOption configures an Environment.
type EnvironmentOption func(*Environment)

// WithConverter sets the converter used when AutoConvert is enabled.
func WithConverter(c Converter) EnvironmentOption {
	return func(e *Environment) {
		e.converter = c
	}
}

// WithFormatter replaces the default CLDRFormatter.
func WithFormatter(f Formatter) EnvironmentOption {
	return func(e *Environment) {
		e.formatter = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EnvironmentOption {
	return func(e *Environment) {
		e.logger = l
	}
}

var defaultEnvironment = NewEnvironment(DefaultSettings())

// NewEnvironment creates a new Environment.
func NewEnvironment(settings Settings, opts ...EnvironmentOption) *Environment {
	e := &Environment{
		settings:  settings,
		formatter: CLDRFormatter{},
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Settings returns the environment settings.
func (e *Environment) Settings() Settings {
	return e.settings
}

// New creates a new Money bound to the environment.
func (e *Environment) New(
	amount decimal.Decimal,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	return newMoney(e, amount, currencyCode, opts...)
}

// NewFromString creates a new Money from a decimal string,
// bound to the environment.
func (e *Environment) NewFromString(
	amount string,
	currencyCode string,
	opts ...Option,
) (Money, error) {
	m, err := NewFromString(amount, currencyCode, opts...)
	if err != nil {
		return Money{}, err
	}

	m.env = e

	return m, nil
}

// Bind returns a copy of m bound to the environment.
func (e *Environment) Bind(m Money) Money {
	m.env = e

	return m
}

// maybeConvert converts value to currencyCode if AutoConvert is enabled
// and the currencies differ. Converter errors are returned unchanged.
func (e *Environment) maybeConvert(
	ctx context.Context,
	value Money,
	currencyCode string,
) (Money, error) {
	if !e.settings.AutoConvert || value.currency == currencyCode {
		return value, nil
	}

	if e.converter == nil {
		return Money{}, fmt.Errorf(
			"%w: %s to %s",
			ErrConverterNotConfigured,
			value.currency,
			currencyCode,
		)
	}

	e.logger.Debug(
		"auto converting money operand",
		zap.String("from", value.currency),
		zap.String("to", currencyCode),
		zap.Stringer("amount", value.amount),
	)

	return e.converter.Convert(ctx, value, currencyCode)
}
