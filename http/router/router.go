// Package router builds chi routers whose handlers return errors.
package router

import (
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/purposeinplay/go-money/http/httperr"
	"github.com/purposeinplay/go-money/http/middleware"
)

// New returns a chi router with the options applied in order.
func New(opts ...Option) chi.Router {
	r := chi.NewRouter()

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// HandlerErrorFunc is an http.HandlerFunc returning an error,
// which is written with httperr.HandleError.
type HandlerErrorFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP implements the http.Handler interface.
func (h HandlerErrorFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		httperr.HandleError(err, w, r)
	}
}

// Recoverer is a middleware that recovers from panics, logs the panic (and a
// backtrace), and returns a HTTP 500 (Internal Server Error) status.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil || rvr == http.ErrAbortHandler {
				return
			}

			if entry, ok := chiLogEntry(r); ok {
				entry.Panic(rvr, debug.Stack())
			}

			httperr.HandleError(
				httperr.InternalServerError(http.StatusText(http.StatusInternalServerError)),
				w,
				r,
			)
		}()

		next.ServeHTTP(w, r)
	})
}

func chiLogEntry(r *http.Request) (*middleware.StructuredLoggerEntry, bool) {
	entry, ok := chimiddleware.GetLogEntry(r).(*middleware.StructuredLoggerEntry)

	return entry, ok && entry != nil
}

// Healthcheck responds with 200 OK.
func Healthcheck() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}
