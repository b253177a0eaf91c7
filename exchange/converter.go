package exchange

import (
	"context"
	"fmt"

	"github.com/purposeinplay/go-money/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ensure Converter implements the money.Converter interface.
var _ money.Converter = (*Converter)(nil)

// Converter converts money with the rates of a backend.
type Converter struct {
	store   Store
	backend string
	logger  *zap.Logger
}

// NewConverter returns a Converter using the rates stored for backend.
func NewConverter(store Store, backend string, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{
		store:   store,
		backend: backend,
		logger:  logger,
	}
}

// Rate returns the number of target units worth one source unit.
//
// A single stored rate is only usable between the base currency and
// the other currency. With both rates stored, the rate is derived
// through the base currency.
func (c *Converter) Rate(
	ctx context.Context,
	source string,
	target string,
) (decimal.Decimal, error) {
	if source == target {
		return decimal.NewFromInt(1), nil
	}

	rates, err := c.store.Rates(ctx, c.backend, source, target)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rates: %w", err)
	}

	switch len(rates) {
	case 0:
		return decimal.Decimal{}, missingRate(source, target)

	case 1:
		base, err := c.store.BaseCurrency(ctx, c.backend)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("base currency: %w", err)
		}

		return directRate(base, source, target, rates[0])

	default:
		from, to := rates[0], rates[1]
		if from.Currency == target {
			from, to = to, from
		}

		if from.Value.IsZero() {
			return decimal.Decimal{}, missingRate(source, target)
		}

		return to.Value.Div(from.Value), nil
	}
}

// Convert implements the money.Converter interface. The decimal places
// of m are kept, other metadata is dropped.
func (c *Converter) Convert(
	ctx context.Context,
	m money.Money,
	currencyCode string,
) (money.Money, error) {
	rate, err := c.Rate(ctx, m.Currency(), currencyCode)
	if err != nil {
		return money.Money{}, err
	}

	c.logger.Debug(
		"converting money",
		zap.String("backend", c.backend),
		zap.String("from", m.Currency()),
		zap.String("to", currencyCode),
		zap.Stringer("rate", rate),
	)

	var opts []money.Option

	if m.HasDecimalPlaces() {
		opts = append(opts, money.WithDecimalPlaces(m.DecimalPlaces()))
	}

	converted, err := money.New(m.Amount().Mul(rate), currencyCode, opts...)
	if err != nil {
		return money.Money{}, fmt.Errorf("new money: %w", err)
	}

	return converted, nil
}

func directRate(base, source, target string, r Rate) (decimal.Decimal, error) {
	switch {
	case base == source && r.Currency == target:
		return r.Value, nil

	case base == target && r.Currency == source && !r.Value.IsZero():
		return decimal.NewFromInt(1).Div(r.Value), nil

	default:
		return decimal.Decimal{}, missingRate(source, target)
	}
}

func missingRate(source, target string) error {
	return fmt.Errorf("%w: %s -> %s", ErrMissingRate, source, target)
}
