// Package query builds deferred query expressions with goqu that money
// values can be combined with, eg. adding 10 USD to a balance column
// inside an UPDATE statement.
package query

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/purposeinplay/go-money/money"
	"github.com/shopspring/decimal"
)

// ensure Expression implements the money.Combinable interface.
var _ money.Combinable = Expression{}

type operator string

const (
	opAdd operator = "+"
	opSub operator = "-"
	opMul operator = "*"
	opDiv operator = "/"
)

// Expression is a computation evaluated by the database,
// such as a column reference or arithmetic over columns.
type Expression struct {
	expr exp.Expression
}

// F returns an expression referencing column, which may be
// qualified, eg. "accounts.balance".
func F(column string) Expression {
	return Expression{expr: goqu.I(column)}
}

// Wrap returns an Expression over a goqu expression.
func Wrap(e exp.Expression) Expression {
	return Expression{expr: e}
}

// Expr returns the goqu expression, to be used in a dataset.
func (e Expression) Expr() exp.Expression {
	return e.expr
}

// Add returns e + rhs. rhs may be an Expression, a goqu expression,
// a decimal or a plain value.
func (e Expression) Add(rhs interface{}) Expression {
	return combine(e.expr, opAdd, rhs)
}

// Sub returns e - rhs.
func (e Expression) Sub(rhs interface{}) Expression {
	return combine(e.expr, opSub, rhs)
}

// Mul returns e * rhs.
func (e Expression) Mul(rhs interface{}) Expression {
	return combine(e.expr, opMul, rhs)
}

// Div returns e / rhs.
func (e Expression) Div(rhs interface{}) Expression {
	return combine(e.expr, opDiv, rhs)
}

// ReflectedAdd returns amount + e.
func (e Expression) ReflectedAdd(amount decimal.Decimal) exp.Expression {
	return combine(amount, opAdd, e.expr).expr
}

// ReflectedSub returns amount - e.
func (e Expression) ReflectedSub(amount decimal.Decimal) exp.Expression {
	return combine(amount, opSub, e.expr).expr
}

// ReflectedMul returns amount * e.
func (e Expression) ReflectedMul(amount decimal.Decimal) exp.Expression {
	return combine(amount, opMul, e.expr).expr
}

// ReflectedDiv returns amount / e.
func (e Expression) ReflectedDiv(amount decimal.Decimal) exp.Expression {
	return combine(amount, opDiv, e.expr).expr
}

func combine(lhs interface{}, op operator, rhs interface{}) Expression {
	return Expression{
		expr: goqu.L("(? "+string(op)+" ?)", operand(lhs), operand(rhs)),
	}
}

// operand unwraps expressions and renders decimals as numeric
// literals so they are not quoted as strings.
func operand(v interface{}) interface{} {
	switch t := v.(type) {
	case Expression:
		return t.expr
	case decimal.Decimal:
		return goqu.L(t.String())
	case money.Money:
		return goqu.L(t.Amount().String())
	default:
		return t
	}
}
