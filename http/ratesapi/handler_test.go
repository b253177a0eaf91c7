package ratesapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/purposeinplay/go-money/exchange"
	"github.com/purposeinplay/go-money/http/ratesapi"
	"github.com/purposeinplay/go-money/http/router"
	"github.com/purposeinplay/go-money/l10n"
	"github.com/purposeinplay/go-money/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newMux(t *testing.T) http.Handler {
	t.Helper()

	store := exchange.NewMemoryStore()

	err := store.UpdateRates(context.Background(), "test", "USD", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.5"),
	})
	require.NoError(t, err)

	resolver := l10n.NewResolver(language.AmericanEnglish, language.AmericanEnglish, language.German)

	mux := router.New(router.WithMiddleware(resolver.Middleware))

	ratesapi.New(
		exchange.NewConverter(store, "test", nil),
		money.NewEnvironment(money.DefaultSettings()),
	).Routes(mux)

	return mux
}

func get(t *testing.T, mux http.Handler, target, lang string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	return rr
}

func TestRate(t *testing.T) {
	t.Parallel()

	mux := newMux(t)

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/rate?from=EUR&to=USD", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"from":"EUR","to":"USD","rate":"2"}`, rr.Body.String())
	})

	t.Run("MissingParams", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/rate?from=EUR", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidCurrency", func(t *testing.T) {
		t.Parallel()

		for _, target := range []string{
			"/rate?from=EUR&to=XXY",
			"/rate?from=ABC&to=USD",
		} {
			rr := get(t, mux, target, "")

			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
			assert.Contains(t, rr.Body.String(), "invalid currency", target)
		}
	})

	t.Run("MissingRate", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/rate?from=EUR&to=JPY", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"code":404,"msg":"missing rate: EUR -> JPY"}`, rr.Body.String())
	})
}

func TestConvert(t *testing.T) {
	t.Parallel()

	mux := newMux(t)

	t.Run("Localized", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/convert?amount=1234&from=USD&to=EUR", "de-DE")

		require.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, "de", rr.Header().Get("Content-Language"))
		assert.Contains(t, rr.Body.String(), `"money":{"amount":"617","currency":"EUR"}`)
		assert.Contains(t, rr.Body.String(), `617,00`)
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/convert?amount=10&from=USD&to=EUR", "")

		require.Equal(t, http.StatusOK, rr.Code)

		assert.Contains(t, rr.Body.String(), `"formatted":"$10.00"`)
		assert.Contains(t, rr.Body.String(), `"formatted":"€5.00"`)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/convert?amount=ten&from=USD&to=EUR", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidCurrency", func(t *testing.T) {
		t.Parallel()

		for _, target := range []string{
			"/convert?amount=10&from=USD&to=XXY",
			"/convert?amount=10&from=ABC&to=EUR",
		} {
			rr := get(t, mux, target, "")

			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
			assert.Contains(t, rr.Body.String(), "invalid currency", target)
		}
	})

	t.Run("MissingTarget", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/convert?amount=10&from=USD", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("MissingRate", func(t *testing.T) {
		t.Parallel()

		rr := get(t, mux, "/convert?amount=10&from=USD&to=GBP", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
