package query

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/purposeinplay/go-money/money"
)

// CurrencySuffix is appended to the name of a money column
// to get the name of its currency column.
const CurrencySuffix = "_currency"

// MoneyField describes a money value stored in two columns:
// the amount column and the currency column.
type MoneyField struct {
	name string
}

// NewMoneyField returns a MoneyField storing its amount in name
// and its currency in name + CurrencySuffix.
func NewMoneyField(name string) MoneyField {
	return MoneyField{name: name}
}

// AmountColumn returns the name of the amount column.
func (f MoneyField) AmountColumn() string {
	return f.name
}

// CurrencyColumn returns the name of the currency column.
func (f MoneyField) CurrencyColumn() string {
	return f.name + CurrencySuffix
}

// F returns an expression referencing the amount column.
func (f MoneyField) F() Expression {
	return F(f.name)
}

// Record returns the columns of m, to be used in an insert or update.
func (f MoneyField) Record(m money.Money) goqu.Record {
	return goqu.Record{
		f.name:             goqu.L(m.Amount().String()),
		f.CurrencyColumn(): m.Currency(),
	}
}

// Eq returns a condition matching rows storing m.
func (f MoneyField) Eq(m money.Money) exp.ExpressionList {
	return goqu.And(
		goqu.I(f.name).Eq(goqu.L(m.Amount().String())),
		goqu.I(f.CurrencyColumn()).Eq(m.Currency()),
	)
}

// Set returns the columns to update with the result of an operation.
// A deferred result only updates the amount column, a money result
// updates both columns. Ratios cannot be stored.
func (f MoneyField) Set(r money.Result) (goqu.Record, error) {
	if e, ok := r.Expression(); ok {
		return goqu.Record{f.name: e}, nil
	}

	if m, ok := r.Money(); ok {
		return f.Record(m), nil
	}

	return nil, fmt.Errorf(
		"%w: cannot store a ratio in %s",
		money.ErrUnsupportedOperand,
		f.name,
	)
}
