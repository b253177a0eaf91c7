package money

import (
	"github.com/bojanz/currency"
)

// Formatter turns a Money into localized text.
//
// opts holds the merged environment and value format options,
// with the resolved locale under OptionLocale.
type Formatter interface {
	FormatMoney(m Money, opts FormatOptions) string
}

// ensure CLDRFormatter implements the Formatter interface.
var _ Formatter = CLDRFormatter{}

// CLDRFormatter formats money using CLDR locale data.
type CLDRFormatter struct{}

var (
	displays = map[string]currency.Display{
		"symbol": currency.DisplaySymbol,
		"code":   currency.DisplayCode,
		"name":   currency.DisplayName,
		"none":   currency.DisplayNone,
	}

	roundings = map[string]currency.RoundingMode{
		"half_up":   currency.RoundHalfUp,
		"half_down": currency.RoundHalfDown,
		"up":        currency.RoundUp,
		"down":      currency.RoundDown,
		"half_even": currency.RoundHalfEven,
	}
)

// FormatMoney implements the Formatter interface.
func (CLDRFormatter) FormatMoney(m Money, opts FormatOptions) string {
	amount, err := currency.NewAmount(m.amount.String(), m.currency)
	if err != nil {
		return m.amount.String() + " " + m.currency
	}

	f := currency.NewFormatter(currency.NewLocale(opts.Locale()))

	if symbol, ok := opts.Bool(OptionSymbol); ok && !symbol {
		f.CurrencyDisplay = currency.DisplayCode
	}

	if display, ok := opts.Get(OptionCurrencyDisplay); ok {
		f.CurrencyDisplay = displays[display]
	}

	if grouping, ok := opts.Bool(OptionGrouping); ok {
		f.NoGrouping = !grouping
	}

	if accounting, ok := opts.Bool(OptionAccounting); ok {
		f.AccountingStyle = accounting
	}

	if plusSign, ok := opts.Bool(OptionPlusSign); ok {
		f.AddPlusSign = plusSign
	}

	if currencyDigits, ok := opts.Bool(OptionCurrencyDigits); ok && !currencyDigits {
		places := digits(m.DecimalPlaces())

		f.MinDigits = places
		f.MaxDigits = places
	}

	if minDigits, ok := opts.Uint8(OptionMinDigits); ok {
		f.MinDigits = minDigits
	}

	if maxDigits, ok := opts.Uint8(OptionMaxDigits); ok {
		f.MaxDigits = maxDigits
	}

	if rounding, ok := opts.Get(OptionRounding); ok {
		f.RoundingMode = roundings[rounding]
	}

	return f.Format(amount)
}

// digits clamps places to the range accepted by the formatter.
func digits(places int32) uint8 {
	const maxDigits = 254

	switch {
	case places < 0:
		return 0
	case places > maxDigits:
		return maxDigits
	default:
		return uint8(places)
	}
}
