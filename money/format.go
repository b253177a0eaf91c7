package money

import (
	"encoding"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Format option keys understood by the CLDRFormatter.
const (
	// OptionSymbol shows the currency symbol when true
	// and the currency code when false.
	OptionSymbol = "symbol"
	// OptionCurrencyDisplay is one of symbol, code, name or none.
	OptionCurrencyDisplay = "currency_display"
	// OptionGrouping enables digit grouping, eg. 1,000.
	OptionGrouping = "grouping"
	// OptionAccounting wraps negative amounts in parentheses.
	OptionAccounting = "accounting"
	// OptionPlusSign adds a plus sign to positive amounts.
	OptionPlusSign = "plus_sign"
	// OptionMinDigits is the minimum number of fraction digits.
	OptionMinDigits = "min_digits"
	// OptionMaxDigits is the maximum number of fraction digits.
	OptionMaxDigits = "max_digits"
	// OptionRounding is one of half_up, half_down, up, down or half_even.
	OptionRounding = "rounding"
	// OptionCurrencyDigits uses the currency digits when true and
	// the value decimal places when false.
	OptionCurrencyDigits = "currency_digits"
	// OptionLocale is the BCP 47 locale used for formatting.
	OptionLocale = "locale"
)

var (
	boolOptions = []string{
		OptionSymbol,
		OptionGrouping,
		OptionAccounting,
		OptionPlusSign,
		OptionCurrencyDigits,
	}

	digitOptions = []string{OptionMinDigits, OptionMaxDigits}

	currencyDisplays = []string{"symbol", "code", "name", "none"}

	roundingModes = []string{"half_up", "half_down", "up", "down", "half_even"}
)

var (
	// ensure FormatOptions implements text marshaller and unmarshaler interface.
	_ encoding.TextMarshaler   = FormatOptions{}
	_ encoding.TextUnmarshaler = (*FormatOptions)(nil)
)

// FormatOptions is an immutable mapping of format option keys
// to their values. The zero value holds no options.
type FormatOptions struct {
	values map[string]string
}

// NewFormatOptions validates values and returns them as FormatOptions.
// The map is copied.
func NewFormatOptions(values map[string]string) (FormatOptions, error) {
	if len(values) == 0 {
		return FormatOptions{}, nil
	}

	opts := FormatOptions{values: make(map[string]string, len(values))}

	for key, value := range values {
		normalized, err := normalizeOption(key, value)
		if err != nil {
			return FormatOptions{}, err
		}

		opts.values[key] = normalized
	}

	return opts, nil
}

// MustFormatOptions returns opts if err is nil and panics otherwise.
func MustFormatOptions(opts FormatOptions, err error) FormatOptions {
	if err != nil {
		panic(err)
	}

	return opts
}

// Len returns the number of options.
func (o FormatOptions) Len() int {
	return len(o.values)
}

// Get returns the value stored under key.
func (o FormatOptions) Get(key string) (string, bool) {
	v, ok := o.values[key]

	return v, ok
}

// Bool returns the boolean value stored under key.
func (o FormatOptions) Bool(key string) (bool, bool) {
	v, ok := o.values[key]
	if !ok {
		return false, false
	}

	b, err := strconv.ParseBool(v)

	return b, err == nil
}

// Uint8 returns the numeric value stored under key.
func (o FormatOptions) Uint8(key string) (uint8, bool) {
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}

	const (
		base    = 10
		bitSize = 8
	)

	n, err := strconv.ParseUint(v, base, bitSize)

	return uint8(n), err == nil
}

// Locale returns the locale option, or an empty string.
func (o FormatOptions) Locale() string {
	return o.values[OptionLocale]
}

// Map returns a copy of the options.
func (o FormatOptions) Map() map[string]string {
	return maps.Clone(o.values)
}

// Merge returns the options of o overridden by those of override.
// Keys missing from override keep their value in o.
func (o FormatOptions) Merge(override FormatOptions) FormatOptions {
	merged := make(map[string]string, len(o.values)+len(override.values))

	maps.Copy(merged, o.values)
	maps.Copy(merged, override.values)

	return FormatOptions{values: merged}
}

// String returns the options as sorted "key:value" pairs
// separated by commas.
func (o FormatOptions) String() string {
	pairs := make([]string, 0, len(o.values))

	for _, key := range slices.Sorted(maps.Keys(o.values)) {
		pairs = append(pairs, key+":"+o.values[key])
	}

	return strings.Join(pairs, ",")
}

// MarshalText implements the encoding.TextMarshaler interface.
func (o FormatOptions) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It parses comma separated "key:value" pairs, eg.
// "symbol:false,grouping:true".
func (o *FormatOptions) UnmarshalText(text []byte) error {
	values := make(map[string]string)

	for _, pair := range strings.Split(string(text), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf(
				"%w: pair \"%s\" has no value",
				ErrInvalidFormatOption,
				pair,
			)
		}

		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	opts, err := NewFormatOptions(values)
	if err != nil {
		return err
	}

	*o = opts

	return nil
}

func (o FormatOptions) with(key, value string) FormatOptions {
	values := maps.Clone(o.values)
	if values == nil {
		values = make(map[string]string, 1)
	}

	values[key] = value

	return FormatOptions{values: values}
}

func (o FormatOptions) clone() FormatOptions {
	return FormatOptions{values: maps.Clone(o.values)}
}

func normalizeOption(key, value string) (string, error) {
	switch {
	case slices.Contains(boolOptions, key):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", invalidOption(key, value)
		}

		return strconv.FormatBool(b), nil

	case slices.Contains(digitOptions, key):
		const (
			base    = 10
			bitSize = 8
		)

		n, err := strconv.ParseUint(value, base, bitSize)
		if err != nil {
			return "", invalidOption(key, value)
		}

		return strconv.FormatUint(n, base), nil

	case key == OptionCurrencyDisplay:
		return oneOf(key, value, currencyDisplays)

	case key == OptionRounding:
		return oneOf(key, value, roundingModes)

	case key == OptionLocale:
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			return "", invalidOption(key, value)
		}

		return tag.String(), nil

	default:
		return "", fmt.Errorf(
			"%w: unknown key \"%s\"",
			ErrInvalidFormatOption,
			key,
		)
	}
}

func oneOf(key, value string, allowed []string) (string, error) {
	v := strings.ToLower(value)
	if !slices.Contains(allowed, v) {
		return "", invalidOption(key, value)
	}

	return v, nil
}

func invalidOption(key, value string) error {
	return fmt.Errorf(
		"%w: \"%s\" is not a valid value for \"%s\"",
		ErrInvalidFormatOption,
		value,
		key,
	)
}
