// Package l10n carries the active language of a request
// on a context.Context and resolves it from HTTP requests.
package l10n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type contextKey struct{}

// WithLanguage returns a copy of ctx with tag as the active language.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}

// Language returns the active language of ctx, if any.
func Language(ctx context.Context) (language.Tag, bool) {
	if ctx == nil {
		return language.Und, false
	}

	tag, ok := ctx.Value(contextKey{}).(language.Tag)

	return tag, ok
}

// Resolve returns the active language of ctx. If no language is active
// it falls back to fallbackCode, and to language.Und if the code
// cannot be parsed.
func Resolve(ctx context.Context, fallbackCode string) language.Tag {
	if tag, ok := Language(ctx); ok {
		return tag
	}

	tag, err := Parse(fallbackCode)
	if err != nil {
		return language.Und
	}

	return tag
}

// Parse parses a language code written either as a BCP 47 tag ("en-us")
// or as a POSIX locale name ("en_US").
func Parse(code string) (language.Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Und, fmt.Errorf("parse language: empty code")
	}

	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("parse language \"%s\": %w", code, err)
	}

	return tag, nil
}

// ToLocale returns the POSIX locale name of tag, eg. "en_US" for en-US.
func ToLocale(tag language.Tag) string {
	base, _ := tag.Base()

	region, confidence := tag.Region()
	if confidence != language.Exact {
		return base.String()
	}

	return base.String() + "_" + region.String()
}
