package l10n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "lang"
)

// Resolver determines the language of HTTP requests among
// a set of supported languages.
type Resolver struct {
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
}

// NewResolver returns a Resolver. Requests that do not ask for one of
// the supported languages resolve to fallback. With no supported
// languages every well formed tag is accepted.
func NewResolver(fallback language.Tag, supported ...language.Tag) *Resolver {
	r := &Resolver{
		fallback:  fallback,
		supported: supported,
	}

	if len(supported) > 0 {
		r.matcher = language.NewMatcher(supported)
	}

	return r
}

// ResolveTag determines the best language for req, looking at the
// lang query parameter, the lang cookie and the Accept-Language header,
// in that order.
func (r *Resolver) ResolveTag(req *http.Request) language.Tag {
	if req == nil {
		return r.fallback
	}

	if value := strings.TrimSpace(req.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := r.match(value); ok {
			return tag
		}
	}

	if cookie, err := req.Cookie(LangCookieName); err == nil {
		if tag, ok := r.match(cookie.Value); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(req.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			if tag, ok := r.matchTags(tags...); ok {
				return tag
			}
		}
	}

	return r.fallback
}

// Middleware activates the resolved language on the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := WithLanguage(req.Context(), r.ResolveTag(req))

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Resolver) match(value string) (language.Tag, bool) {
	tag, err := Parse(value)
	if err != nil {
		return language.Und, false
	}

	return r.matchTags(tag)
}

func (r *Resolver) matchTags(tags ...language.Tag) (language.Tag, bool) {
	if len(tags) == 0 {
		return language.Und, false
	}

	if r.matcher == nil {
		return tags[0], true
	}

	_, index, confidence := r.matcher.Match(tags...)
	if confidence == language.No {
		return language.Und, false
	}

	return r.supported[index], true
}
