package money

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/purposeinplay/go-money/l10n"
	"golang.org/x/text/language"
)

// ensure Money implements the fmt.Stringer interface.
var _ fmt.Stringer = Money{}

// Format returns the localized text of m.
//
// The environment default format options are merged with the value
// format options, the latter winning on conflicting keys. The locale
// is the active language of ctx, or the environment LanguageCode
// when no language is active.
func (m Money) Format(ctx context.Context) string {
	env := m.environment()

	opts := env.settings.Format.Merge(m.formatOptions)

	if tag := l10n.Resolve(ctx, env.settings.LanguageCode); tag != language.Und {
		opts = opts.with(OptionLocale, tag.String())
	}

	return env.formatter.FormatMoney(m, opts)
}

// String returns the text of m in the default language.
func (m Money) String() string {
	return m.Format(context.Background())
}

const nbsp = "\u00a0"

// HTML returns the escaped text of m, safe to embed in markup.
// Spaces are replaced with non-breaking spaces so the currency
// symbol is never wrapped away from the amount.
func (m Money) HTML(ctx context.Context) template.HTML {
	escaped := templ.EscapeString(m.Format(ctx))

	//nolint:gosec // escaped above.
	return template.HTML(strings.ReplaceAll(escaped, " ", nbsp))
}

// Component returns a templ component rendering the HTML of m
// in the language active on the render context.
func (m Money) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, string(m.HTML(ctx)))

		return err
	})
}
