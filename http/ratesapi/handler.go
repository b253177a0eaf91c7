// Package ratesapi exposes exchange rates and money conversion over HTTP.
// Amounts are formatted in the language of the request.
package ratesapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/purposeinplay/go-money/exchange"
	"github.com/purposeinplay/go-money/http/httperr"
	"github.com/purposeinplay/go-money/http/render"
	"github.com/purposeinplay/go-money/http/router"
	"github.com/purposeinplay/go-money/l10n"
	"github.com/purposeinplay/go-money/money"
	"github.com/shopspring/decimal"
)

// Converter finds rates and converts money between currencies.
type Converter interface {
	money.Converter

	Rate(ctx context.Context, source, target string) (decimal.Decimal, error)
}

// Handler serves the rates API.
type Handler struct {
	converter Converter
	env       *money.Environment
}

// New returns a Handler. Parsed amounts are bound to env,
// which controls their formatting.
func New(converter Converter, env *money.Environment) *Handler {
	return &Handler{
		converter: converter,
		env:       env,
	}
}

// Routes mounts the API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Method(http.MethodGet, "/rate", router.HandlerErrorFunc(h.rate))
	r.Method(http.MethodGet, "/convert", router.HandlerErrorFunc(h.convert))
}

type rateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request) error {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		return httperr.BadRequestError("from and to are required")
	}

	if err := validateCurrencies(from, to); err != nil {
		return err
	}

	rate, err := h.converter.Rate(r.Context(), from, to)
	if err != nil {
		return conversionError(err)
	}

	return render.SendJSON(w, http.StatusOK, rateResponse{
		From: from,
		To:   to,
		Rate: rate,
	})
}

type amountResponse struct {
	Money     money.Money `json:"money"`
	Formatted string      `json:"formatted"`
	HTML      string      `json:"html"`
}

type convertResponse struct {
	Source amountResponse `json:"source"`
	Result amountResponse `json:"result"`
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	to := q.Get("to")
	if to == "" {
		return httperr.BadRequestError("to is required")
	}

	if err := validateCurrencies(q.Get("from"), to); err != nil {
		return err
	}

	source, err := h.env.NewFromString(q.Get("amount"), q.Get("from"))
	if err != nil {
		return httperr.BadRequestError("invalid amount").WithInternalError(err)
	}

	result, err := h.converter.Convert(r.Context(), source, to)
	if err != nil {
		return conversionError(err)
	}

	ctx := r.Context()

	if tag, ok := l10n.Language(ctx); ok {
		w.Header().Set("Content-Language", tag.String())
	}

	return render.SendJSON(w, http.StatusOK, convertResponse{
		Source: newAmountResponse(ctx, source),
		Result: newAmountResponse(ctx, h.env.Bind(result)),
	})
}

func newAmountResponse(ctx context.Context, m money.Money) amountResponse {
	return amountResponse{
		Money:     m,
		Formatted: m.Format(ctx),
		HTML:      string(m.HTML(ctx)),
	}
}

func validateCurrencies(codes ...string) error {
	for _, code := range codes {
		if err := money.ValidateCurrency(code); err != nil {
			return httperr.BadRequestError("%s", err.Error()).WithInternalError(err)
		}
	}

	return nil
}

func conversionError(err error) error {
	switch {
	case errors.Is(err, exchange.ErrMissingRate):
		return httperr.NotFoundError("%s", err.Error()).WithInternalError(err)

	case errors.Is(err, money.ErrInvalidCurrency):
		return httperr.BadRequestError("%s", err.Error()).WithInternalError(err)

	default:
		return err
	}
}
