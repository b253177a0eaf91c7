package money

import (
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"
)

// Operand is the other side of an arithmetic operation.
// It is one of Money, Number or Deferred.
type Operand interface {
	operand()
}

var (
	_ Operand = Money{}
	_ Operand = Number{}
	_ Operand = Deferred{}
)

func (Money) operand() {}

// Number is a plain, dimensionless decimal operand.
type Number struct {
	value decimal.Decimal
}

// Num returns a Number operand for d.
func Num(d decimal.Decimal) Number {
	return Number{value: d}
}

// NumInt returns a Number operand for i.
func NumInt(i int64) Number {
	return Number{value: decimal.NewFromInt(i)}
}

// Decimal returns the decimal value of the number.
func (n Number) Decimal() decimal.Decimal {
	return n.value
}

func (Number) operand() {}

// Combinable is implemented by query expressions that represent
// a computation deferred to the database.
//
// The reflected hooks receive the money amount as the left-hand
// side and return the combined expression, eg. ReflectedSub(10)
// on column c builds "10 - c".
type Combinable interface {
	ReflectedAdd(amount decimal.Decimal) exp.Expression
	ReflectedSub(amount decimal.Decimal) exp.Expression
	ReflectedMul(amount decimal.Decimal) exp.Expression
	ReflectedDiv(amount decimal.Decimal) exp.Expression
}

// Deferred is an operand wrapping a Combinable expression.
type Deferred struct {
	expr Combinable
}

// Defer returns a Deferred operand for c.
func Defer(c Combinable) Deferred {
	return Deferred{expr: c}
}

func (Deferred) operand() {}

type resultKind uint8

const (
	resultMoney resultKind = iota + 1
	resultRatio
	resultExpression
)

// Result is the outcome of an arithmetic operation: a Money,
// a dimensionless ratio or a deferred query expression.
type Result struct {
	kind  resultKind
	money Money
	ratio decimal.Decimal
	expr  exp.Expression
}

func moneyResult(m Money) Result {
	return Result{kind: resultMoney, money: m}
}

func ratioResult(d decimal.Decimal) Result {
	return Result{kind: resultRatio, ratio: d}
}

func expressionResult(e exp.Expression) Result {
	return Result{kind: resultExpression, expr: e}
}

// Money returns the money value and true if the result is a Money.
func (r Result) Money() (Money, bool) {
	return r.money, r.kind == resultMoney
}

// MustMoney returns the money value and panics if the result
// is not a Money.
func (r Result) MustMoney() Money {
	if r.kind != resultMoney {
		panic("money: result is not a money value")
	}

	return r.money
}

// Ratio returns the ratio and true if the result is the quotient
// of two money values.
func (r Result) Ratio() (decimal.Decimal, bool) {
	return r.ratio, r.kind == resultRatio
}

// Expression returns the expression and true if the result
// is deferred to the database.
func (r Result) Expression() (exp.Expression, bool) {
	return r.expr, r.kind == resultExpression
}

// IsDeferred reports whether the result is a query expression.
func (r Result) IsDeferred() bool {
	return r.kind == resultExpression
}
