package money_test

import (
	"context"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/matryer/is"
	"github.com/pkg/errors"
	"github.com/purposeinplay/go-money/money"
	"github.com/shopspring/decimal"
)

// column is a Combinable recording the reflected operation
// in a literal expression.
type column string

func (c column) reflected(op string, amount decimal.Decimal) exp.Expression {
	return goqu.L(amount.String() + " " + op + " " + string(c))
}

func (c column) ReflectedAdd(amount decimal.Decimal) exp.Expression {
	return c.reflected("+", amount)
}

func (c column) ReflectedSub(amount decimal.Decimal) exp.Expression {
	return c.reflected("-", amount)
}

func (c column) ReflectedMul(amount decimal.Decimal) exp.Expression {
	return c.reflected("*", amount)
}

func (c column) ReflectedDiv(amount decimal.Decimal) exp.Expression {
	return c.reflected("/", amount)
}

type converterFunc func(
	ctx context.Context,
	m money.Money,
	currencyCode string,
) (money.Money, error)

func (f converterFunc) Convert(
	ctx context.Context,
	m money.Money,
	currencyCode string,
) (money.Money, error) {
	return f(ctx, m, currencyCode)
}

func usd(amount string, opts ...money.Option) money.Money {
	return money.Must(money.NewFromString(amount, "USD", opts...))
}

func literal(t *testing.T, r money.Result) string {
	t.Helper()

	e, ok := r.Expression()
	if !ok {
		t.Fatalf("result is not an expression")
	}

	return e.(exp.LiteralExpression).Literal()
}

func TestAdd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("KeepsLargestDecimalPlaces", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10", money.WithDecimalPlaces(2)).
			Add(ctx, usd("5", money.WithDecimalPlaces(4)))
		i.NoErr(err)

		i.Equal(int32(4), r.MustMoney().DecimalPlaces())
	})

	t.Run("OneSideDecimalPlaces", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10", money.WithDecimalPlaces(2)).Add(ctx, usd("5"))
		i.NoErr(err)

		m, ok := r.Money()
		i.True(ok)

		i.True(m.Amount().Equal(decimal.NewFromInt(15)))
		i.Equal("USD", m.Currency())
		i.True(m.HasDecimalPlaces())
		i.Equal(int32(2), m.DecimalPlaces())
	})

	t.Run("OneSideExplicitBelowDefault", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10", money.WithDecimalPlaces(0)).Add(ctx, usd("5"))
		i.NoErr(err)

		m := r.MustMoney()

		i.True(m.HasDecimalPlaces())
		i.Equal(int32(2), m.DecimalPlaces())

		r, err = usd("10").Sub(ctx, usd("5", money.WithDecimalPlaces(1)))
		i.NoErr(err)

		i.Equal(int32(2), r.MustMoney().DecimalPlaces())
	})

	t.Run("ExplicitAboveEnvironmentDefault", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		settings := money.DefaultSettings()
		settings.DecimalPlaces = 4

		env := money.NewEnvironment(settings)

		a := money.Must(env.New(decimal.NewFromInt(1), "USD", money.WithDecimalPlaces(3)))
		b := money.Must(env.New(decimal.NewFromInt(2), "USD"))

		r, err := a.Add(ctx, b)
		i.NoErr(err)

		i.Equal(int32(4), r.MustMoney().DecimalPlaces())
	})

	t.Run("NoDecimalPlaces", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("1").Add(ctx, usd("2"))
		i.NoErr(err)

		i.True(!r.MustMoney().HasDecimalPlaces())
	})

	t.Run("FormatOptionsAreNotPropagated", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		opts := money.MustFormatOptions(money.NewFormatOptions(
			map[string]string{money.OptionSymbol: "false"},
		))

		r, err := usd("1", money.WithFormatOptions(opts), money.WithLocalization(false)).
			Add(ctx, usd("2"))
		i.NoErr(err)

		m := r.MustMoney()

		i.Equal(0, m.FormatOptions().Len())
		i.True(m.IsLocalized())
	})

	t.Run("ZeroNumber", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("7", money.WithDecimalPlaces(3)).Add(ctx, money.NumInt(0))
		i.NoErr(err)

		m := r.MustMoney()

		i.True(m.Amount().Equal(decimal.NewFromInt(7)))
		i.Equal(int32(3), m.DecimalPlaces())
	})

	t.Run("NonZeroNumber", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := usd("7").Add(ctx, money.NumInt(1))

		i.True(errors.Is(err, money.ErrUnsupportedOperand))
	})

	t.Run("CurrencyMismatch", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := usd("7").Add(ctx, money.Must(money.NewFromInt(1, "EUR")))

		i.True(errors.Is(err, money.ErrCurrencyMismatch))
	})

	t.Run("Deferred", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10", money.WithDecimalPlaces(2)).
			Add(ctx, money.Defer(column("balance")))
		i.NoErr(err)

		i.True(r.IsDeferred())

		_, ok := r.Money()
		i.True(!ok)

		i.Equal("10 + balance", literal(t, r))
	})
}

func TestAutoConvert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	settings := money.DefaultSettings()
	settings.AutoConvert = true

	t.Run("ConvertsOperand", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		var calls int

		env := money.NewEnvironment(settings, money.WithConverter(converterFunc(
			func(_ context.Context, m money.Money, currencyCode string) (money.Money, error) {
				calls++

				return money.New(
					m.Amount().Mul(decimal.NewFromInt(2)),
					currencyCode,
					money.WithDecimalPlaces(3),
				)
			},
		)))

		a := money.Must(env.New(decimal.NewFromInt(10), "USD"))
		b := money.Must(env.New(decimal.NewFromInt(5), "EUR"))

		r, err := a.Sub(ctx, b)
		i.NoErr(err)

		m := r.MustMoney()

		i.Equal(1, calls)
		i.True(m.Amount().Equal(decimal.Zero))
		i.Equal("USD", m.Currency())
		i.Equal(int32(3), m.DecimalPlaces())

		_, err = a.Add(ctx, a)
		i.NoErr(err)

		i.Equal(1, calls)
	})

	t.Run("ConverterErrorIsReturnedUnchanged", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		errNoRate := errors.New("no rate")

		env := money.NewEnvironment(settings, money.WithConverter(converterFunc(
			func(context.Context, money.Money, string) (money.Money, error) {
				return money.Money{}, errNoRate
			},
		)))

		a := money.Must(env.New(decimal.NewFromInt(10), "USD"))

		_, err := a.Add(ctx, money.Must(money.NewFromInt(5, "EUR")))

		i.Equal(errNoRate, err)
	})

	t.Run("ConverterNotConfigured", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		env := money.NewEnvironment(settings)

		a := money.Must(env.New(decimal.NewFromInt(10), "USD"))

		_, err := a.Add(ctx, money.Must(money.NewFromInt(5, "EUR")))

		i.True(errors.Is(err, money.ErrConverterNotConfigured))
	})
}

func TestSub(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("Money", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10.50").Sub(ctx, usd("0.25", money.WithDecimalPlaces(2)))
		i.NoErr(err)

		m := r.MustMoney()

		i.True(m.Amount().Equal(decimal.RequireFromString("10.25")))
		i.Equal(int32(2), m.DecimalPlaces())
	})

	t.Run("Deferred", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10").Sub(ctx, money.Defer(column("balance")))
		i.NoErr(err)

		i.Equal("10 - balance", literal(t, r))
	})
}

func TestMul(t *testing.T) {
	t.Parallel()

	t.Run("Number", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("2.5", money.WithDecimalPlaces(1)).
			Mul(money.Num(decimal.RequireFromString("1.5")))
		i.NoErr(err)

		m := r.MustMoney()

		i.True(m.Amount().Equal(decimal.RequireFromString("3.75")))
		i.Equal(int32(1), m.DecimalPlaces())
	})

	t.Run("RMul", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("3").RMul(money.NumInt(3))
		i.NoErr(err)

		i.True(r.MustMoney().Amount().Equal(decimal.NewFromInt(9)))
	})

	t.Run("Money", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := usd("2").Mul(usd("3"))

		i.True(errors.Is(err, money.ErrUnsupportedOperand))
	})

	t.Run("Deferred", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("2").Mul(money.Defer(column("quantity")))
		i.NoErr(err)

		i.Equal("2 * quantity", literal(t, r))
	})
}

func TestDiv(t *testing.T) {
	t.Parallel()

	t.Run("MoneyReturnsRatio", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10", money.WithDecimalPlaces(2)).Div(usd("10"))
		i.NoErr(err)

		ratio, ok := r.Ratio()
		i.True(ok)
		i.True(ratio.Equal(decimal.NewFromInt(1)))

		_, ok = r.Money()
		i.True(!ok)
	})

	t.Run("MoneyCurrencyMismatch", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := usd("10").Div(money.Must(money.NewFromInt(10, "EUR")))

		i.True(errors.Is(err, money.ErrCurrencyMismatch))
	})

	t.Run("Number", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10", money.WithDecimalPlaces(2)).Div(money.NumInt(4))
		i.NoErr(err)

		m := r.MustMoney()

		i.True(m.Amount().Equal(decimal.RequireFromString("2.5")))
		i.Equal(int32(2), m.DecimalPlaces())
	})

	t.Run("ByZero", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := usd("10").Div(money.NumInt(0))
		i.True(errors.Is(err, money.ErrDivisionByZero))

		_, err = usd("10").Div(usd("0"))
		i.True(errors.Is(err, money.ErrDivisionByZero))
	})

	t.Run("Deferred", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("10").Div(money.Defer(column("shares")))
		i.NoErr(err)

		i.Equal("10 / shares", literal(t, r))
	})

	t.Run("RDivIsRejected", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		for _, other := range []money.Operand{
			money.NumInt(10),
			money.NumInt(0),
			usd("10"),
		} {
			_, err := usd("10").RDiv(other)

			i.True(errors.Is(err, money.ErrNonMoneyDivision))
			i.Equal(
				"cannot divide a non-money value by a money value",
				err.Error(),
			)
		}
	})
}

func TestRMod(t *testing.T) {
	t.Parallel()

	t.Run("Percentage", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		r, err := usd("200", money.WithDecimalPlaces(2)).RMod(money.NumInt(10))
		i.NoErr(err)

		m := r.MustMoney()

		i.True(m.Amount().Equal(decimal.NewFromInt(20)))
		i.Equal(int32(2), m.DecimalPlaces())
	})

	t.Run("Money", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := usd("200").RMod(usd("10"))

		i.True(errors.Is(err, money.ErrUnsupportedOperand))
	})
}

func TestUnary(t *testing.T) {
	t.Parallel()

	i := is.New(t)

	m := usd("-3.5", money.WithDecimalPlaces(3))

	pos := m.Pos()
	neg := m.Neg()
	abs := m.Abs()

	i.True(pos.Amount().Equal(decimal.RequireFromString("-3.5")))
	i.True(neg.Amount().Equal(decimal.RequireFromString("3.5")))
	i.True(abs.Amount().Equal(decimal.RequireFromString("3.5")))

	for _, v := range []money.Money{pos, neg, abs} {
		i.Equal(int32(3), v.DecimalPlaces())
		i.Equal("USD", v.Currency())
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	t.Run("KeepsDecimalPlaces", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		m := usd("12.3456", money.WithDecimalPlaces(4)).Round(0)

		i.True(m.Amount().Equal(decimal.NewFromInt(12)))
		i.True(m.HasDecimalPlaces())
		i.Equal(int32(4), m.DecimalPlaces())
	})

	t.Run("HalfEven", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		i.True(usd("2.5").Round(0).Amount().Equal(decimal.NewFromInt(2)))
		i.True(usd("3.5").Round(0).Amount().Equal(decimal.NewFromInt(4)))
		i.True(usd("1.005").Round(2).Amount().Equal(decimal.RequireFromString("1.00")))
	})

	t.Run("DropsFormatOptions", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		opts := money.MustFormatOptions(money.NewFormatOptions(
			map[string]string{money.OptionGrouping: "false"},
		))

		m := usd("1.5", money.WithFormatOptions(opts)).Round(0)

		i.Equal(0, m.FormatOptions().Len())
	})
}

func TestSum(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		total, err := money.Sum(
			ctx,
			usd("1"),
			usd("2", money.WithDecimalPlaces(1)),
			usd("3.25", money.WithDecimalPlaces(2)),
		)
		i.NoErr(err)

		i.True(total.Amount().Equal(decimal.RequireFromString("6.25")))
		i.Equal(int32(2), total.DecimalPlaces())
	})

	t.Run("CurrencyMismatch", func(t *testing.T) {
		t.Parallel()

		i := is.New(t)

		_, err := money.Sum(ctx, usd("1"), money.Must(money.NewFromInt(1, "EUR")))

		i.True(errors.Is(err, money.ErrCurrencyMismatch))
	})
}
