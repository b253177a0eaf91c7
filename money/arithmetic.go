package money

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Add returns m + other.
//
// Money operands must have the same currency, unless auto conversion
// is enabled, in which case other is converted first. Adding a zero
// Number returns m unchanged, any other Number is rejected.
func (m Money) Add(ctx context.Context, other Operand) (Result, error) {
	switch o := other.(type) {
	case Deferred:
		return expressionResult(o.expr.ReflectedAdd(m.amount)), nil

	case Number:
		if o.value.IsZero() {
			return moneyResult(m), nil
		}

		return Result{}, fmt.Errorf(
			"%w: cannot add a number to %s",
			ErrUnsupportedOperand,
			m.currency,
		)

	case Money:
		converted, err := m.sameCurrency(ctx, o)
		if err != nil {
			return Result{}, err
		}

		result := m.derive(m.amount.Add(converted.amount))

		return moneyResult(m.copyAttributes(converted, result)), nil

	default:
		return Result{}, unsupported("add", other)
	}
}

// Sub returns m - other, following the rules of Add.
func (m Money) Sub(ctx context.Context, other Operand) (Result, error) {
	switch o := other.(type) {
	case Deferred:
		return expressionResult(o.expr.ReflectedSub(m.amount)), nil

	case Number:
		if o.value.IsZero() {
			return moneyResult(m), nil
		}

		return Result{}, fmt.Errorf(
			"%w: cannot subtract a number from %s",
			ErrUnsupportedOperand,
			m.currency,
		)

	case Money:
		converted, err := m.sameCurrency(ctx, o)
		if err != nil {
			return Result{}, err
		}

		result := m.derive(m.amount.Sub(converted.amount))

		return moneyResult(m.copyAttributes(converted, result)), nil

	default:
		return Result{}, unsupported("subtract", other)
	}
}

// Mul returns m * other. Only numbers and deferred
// expressions are accepted.
func (m Money) Mul(other Operand) (Result, error) {
	switch o := other.(type) {
	case Deferred:
		return expressionResult(o.expr.ReflectedMul(m.amount)), nil

	case Number:
		result := m.derive(m.amount.Mul(o.value))

		return moneyResult(m.copyAttributes(o, result)), nil

	case Money:
		return Result{}, fmt.Errorf(
			"%w: cannot multiply two money values",
			ErrUnsupportedOperand,
		)

	default:
		return Result{}, unsupported("multiply", other)
	}
}

// RMul returns other * m, which is the same as m * other.
func (m Money) RMul(other Operand) (Result, error) {
	return m.Mul(other)
}

// Div returns m / other.
//
// Dividing by another Money with the same currency returns
// a dimensionless ratio, dividing by a Number returns a Money.
func (m Money) Div(other Operand) (Result, error) {
	switch o := other.(type) {
	case Deferred:
		return expressionResult(o.expr.ReflectedDiv(m.amount)), nil

	case Number:
		if o.value.IsZero() {
			return Result{}, ErrDivisionByZero
		}

		result := m.derive(m.amount.Div(o.value))

		return moneyResult(m.copyAttributes(o, result)), nil

	case Money:
		if o.currency != m.currency {
			return Result{}, fmt.Errorf(
				"%w: cannot divide %s by %s",
				ErrCurrencyMismatch,
				m.currency,
				o.currency,
			)
		}

		if o.amount.IsZero() {
			return Result{}, ErrDivisionByZero
		}

		return ratioResult(m.amount.Div(o.amount)), nil

	default:
		return Result{}, unsupported("divide", other)
	}
}

// RDiv would return other / m. Dividing anything by a money value
// is not supported, so it always fails with ErrNonMoneyDivision.
func (m Money) RDiv(Operand) (Result, error) {
	return Result{}, ErrNonMoneyDivision
}

// RMod returns other % m, which is other percent of m.
// Only numbers are accepted, eg. 10 % 200 USD = 20 USD.
func (m Money) RMod(other Operand) (Result, error) {
	const hundred = 100

	o, ok := other.(Number)
	if !ok {
		return Result{}, unsupported("take percentage of", other)
	}

	result := m.derive(
		o.value.Mul(m.amount).Div(decimal.NewFromInt(hundred)),
	)

	return moneyResult(m.copyAttributes(m, result)), nil
}

// Pos returns +m.
func (m Money) Pos() Money {
	return m.copyAttributes(m, m.derive(m.amount))
}

// Neg returns -m.
func (m Money) Neg() Money {
	return m.copyAttributes(m, m.derive(m.amount.Neg()))
}

// Abs returns |m|.
func (m Money) Abs() Money {
	return m.copyAttributes(m, m.derive(m.amount.Abs()))
}

// Round rounds the amount to ndigits after the decimal point
// using banker's rounding. The metadata of m is kept.
func (m Money) Round(ndigits int32) Money {
	return m.copyAttributes(m, m.derive(m.amount.RoundBank(ndigits)))
}

// Sum adds values to first in order.
func Sum(ctx context.Context, first Money, values ...Money) (Money, error) {
	total := first

	for _, v := range values {
		r, err := total.Add(ctx, v)
		if err != nil {
			return Money{}, fmt.Errorf("add: %w", err)
		}

		total = r.MustMoney()
	}

	return total, nil
}

// sameCurrency returns o, converted to the currency of m
// if auto conversion is enabled.
func (m Money) sameCurrency(ctx context.Context, o Money) (Money, error) {
	converted, err := m.environment().maybeConvert(ctx, o, m.currency)
	if err != nil {
		return Money{}, err
	}

	if converted.currency != m.currency {
		return Money{}, fmt.Errorf(
			"%w: %s and %s",
			ErrCurrencyMismatch,
			m.currency,
			converted.currency,
		)
	}

	return converted, nil
}

func unsupported(op string, other Operand) error {
	return fmt.Errorf("%w: cannot %s %T", ErrUnsupportedOperand, op, other)
}
