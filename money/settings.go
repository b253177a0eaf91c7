package money

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// SettingsPrefix is the prefix of the environment variables
// read by LoadSettings.
const SettingsPrefix = "MONEY_"

// Settings holds the process wide money configuration.
type Settings struct {
	// DecimalPlaces is the display precision of values
	// created without one.
	DecimalPlaces int32 `env:"DECIMAL_PLACES" envDefault:"2"`

	// Format holds the default format options,
	// eg. "symbol:false,grouping:true".
	Format FormatOptions `env:"FORMAT"`

	// AutoConvert converts the other operand of an addition
	// or subtraction to the currency of the receiver.
	AutoConvert bool `env:"AUTO_CONVERT" envDefault:"false"`

	// UseL10N is the default of Money.IsLocalized.
	UseL10N bool `env:"USE_L10N" envDefault:"true"`

	// LanguageCode is used for formatting when no language
	// is active on the context.
	LanguageCode string `env:"LANGUAGE_CODE" envDefault:"en-us"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DecimalPlaces: 2,
		UseL10N:       true,
		LanguageCode:  "en-us",
	}
}

// LoadSettings reads the settings from MONEY_ prefixed
// environment variables.
func LoadSettings() (Settings, error) {
	var s Settings

	err := env.ParseWithOptions(&s, env.Options{Prefix: SettingsPrefix})
	if err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	return s, nil
}
