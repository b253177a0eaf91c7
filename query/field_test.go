package query_test

import (
	"context"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/pkg/errors"
	"github.com/purposeinplay/go-money/money"
	"github.com/purposeinplay/go-money/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyField(t *testing.T) {
	t.Parallel()

	balance := query.NewMoneyField("balance")

	t.Run("Columns", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "balance", balance.AmountColumn())
		assert.Equal(t, "balance_currency", balance.CurrencyColumn())
	})

	t.Run("Insert", func(t *testing.T) {
		t.Parallel()

		m := money.Must(money.NewFromString("97.23", "USD"))

		sql, _, err := dialect.Insert("accounts").Rows(balance.Record(m)).ToSQL()
		require.NoError(t, err)

		assert.Equal(
			t,
			`INSERT INTO "accounts" ("balance", "balance_currency") VALUES (97.23, 'USD')`,
			sql,
		)
	})

	t.Run("Eq", func(t *testing.T) {
		t.Parallel()

		m := money.Must(money.NewFromString("5", "EUR"))

		sql, _, err := dialect.From("accounts").Where(balance.Eq(m)).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, `("balance" = 5)`)
		assert.Contains(t, sql, `("balance_currency" = 'EUR')`)
	})

	t.Run("SetDeferred", func(t *testing.T) {
		t.Parallel()

		ten := money.Must(money.NewFromString("10", "USD"))

		r, err := ten.Add(context.Background(), money.Defer(balance.F()))
		require.NoError(t, err)

		record, err := balance.Set(r)
		require.NoError(t, err)

		sql, _, err := dialect.Update("accounts").
			Set(record).
			Where(goqu.C("id").Eq(1)).
			ToSQL()
		require.NoError(t, err)

		assert.Equal(
			t,
			`UPDATE "accounts" SET "balance"=(10 + "balance") WHERE ("id" = 1)`,
			sql,
		)
	})

	t.Run("SetMoney", func(t *testing.T) {
		t.Parallel()

		r, err := money.Must(money.NewFromString("3", "USD")).Mul(money.NumInt(2))
		require.NoError(t, err)

		record, err := balance.Set(r)
		require.NoError(t, err)

		sql, _, err := dialect.Update("accounts").Set(record).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, `"balance"=6`)
		assert.Contains(t, sql, `"balance_currency"='USD'`)
	})

	t.Run("SetRatio", func(t *testing.T) {
		t.Parallel()

		m := money.Must(money.NewFromString("3", "USD"))

		r, err := m.Div(m)
		require.NoError(t, err)

		_, err = balance.Set(r)

		assert.True(t, errors.Is(err, money.ErrUnsupportedOperand))
	})
}
