package money

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var (
	// ensure Money implements valuer and scanner interface.
	_ sql.Scanner   = (*Money)(nil)
	_ driver.Valuer = Money{}

	// ensure Money implements text marshaller and unmarshaler interface.
	_ encoding.TextMarshaler   = Money{}
	_ encoding.TextUnmarshaler = (*Money)(nil)
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// moneyJSON is the serialized form of Money, holding everything
// needed to rebuild the value.
type moneyJSON struct {
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	DecimalPlaces *int32            `json:"decimal_places,omitempty"`
	FormatOptions map[string]string `json:"format_options,omitempty"`
	UseL10N       *bool             `json:"use_l10n,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	v := moneyJSON{
		Amount:        m.amount,
		Currency:      m.currency,
		FormatOptions: m.formatOptions.Map(),
	}

	if m.hasDecimalPlaces {
		places := m.decimalPlaces
		v.DecimalPlaces = &places
	}

	if m.hasLocalization {
		localized := m.localized
		v.UseL10N = &localized
	}

	return json.Marshal(v)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The environment of m is kept.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON

	err := json.Unmarshal(data, &v)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}

	var opts []Option

	if v.DecimalPlaces != nil {
		opts = append(opts, WithDecimalPlaces(*v.DecimalPlaces))
	}

	if v.UseL10N != nil {
		opts = append(opts, WithLocalization(*v.UseL10N))
	}

	if len(v.FormatOptions) > 0 {
		formatOptions, err := NewFormatOptions(v.FormatOptions)
		if err != nil {
			return err
		}

		opts = append(opts, WithFormatOptions(formatOptions))
	}

	return m.rebuild(v.Amount, v.Currency, opts...)
}

// MarshalText implements the encoding.TextMarshaler interface.
// The text form is "<amount> <currency>", eg. "97.23 USD".
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.amount.String() + " " + m.currency), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// Only the amount and currency are restored, the environment
// of m is kept.
func (m *Money) UnmarshalText(text []byte) error {
	const parts = 2

	fields := strings.Fields(string(text))
	if len(fields) != parts {
		return fmt.Errorf(
			"%w: text \"%s\" is not \"<amount> <currency>\"",
			ErrInvalidValue,
			text,
		)
	}

	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return fmt.Errorf(
			"%w: string \"%s\" is not valid",
			ErrInvalidValue,
			fields[0],
		)
	}

	return m.rebuild(amount, fields[1])
}

// Value defines how Money is stored in the database, in its text form.
func (m Money) Value() (driver.Value, error) {
	if m.currency == "" {
		return nil, nil
	}

	text, err := m.MarshalText()
	if err != nil {
		return nil, err
	}

	return string(text), nil
}

// Scan defines how Money is read from the database.
func (m *Money) Scan(value interface{}) error {
	switch t := value.(type) {
	case string:
		return m.UnmarshalText([]byte(t))

	case []byte:
		return m.UnmarshalText(t)

	case nil:
		*m = Money{env: m.env}

		return nil

	default:
		return fmt.Errorf(
			"%w: could not scan type %T into Money",
			ErrInvalidValue,
			t,
		)
	}
}

func (m *Money) rebuild(
	amount decimal.Decimal,
	currencyCode string,
	opts ...Option,
) error {
	rebuilt, err := newMoney(m.env, amount, currencyCode, opts...)
	if err != nil {
		return err
	}

	*m = rebuilt

	return nil
}
