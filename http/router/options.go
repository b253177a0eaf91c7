package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/purposeinplay/go-money/http/middleware"
	"go.uber.org/zap"
)

// Option configures a router.
type Option func(r chi.Router)

// DefaultCorsOptions allow reads from any origin.
var DefaultCorsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
	ExposedHeaders: []string{"Content-Language"},
}

// WithCors handles cross origin requests.
func WithCors(options cors.Options) Option {
	return func(r chi.Router) {
		r.Use(cors.Handler(options))
	}
}

// WithHealthcheck responds to path with handler,
// or with Healthcheck when handler is nil.
func WithHealthcheck(path string, handler http.HandlerFunc) Option {
	return func(r chi.Router) {
		if handler == nil {
			handler = Healthcheck()
		}

		r.Get(path, handler)
	}
}

// WithRecoverer turns panics into internal server errors.
func WithRecoverer() Option {
	return func(r chi.Router) {
		r.Use(Recoverer)
	}
}

// WithRequestID assigns an id to every request.
func WithRequestID() Option {
	return func(r chi.Router) {
		r.Use(chimiddleware.RequestID)
	}
}

// WithRealIP sets the remote address from the X-Real-IP
// or X-Forwarded-For headers.
func WithRealIP() Option {
	return func(r chi.Router) {
		r.Use(chimiddleware.RealIP)
	}
}

// WithLogger logs every request.
func WithLogger(logger *zap.Logger) Option {
	return func(r chi.Router) {
		r.Use(middleware.NewLoggerMiddleware(logger))
	}
}

// WithMiddleware adds custom middlewares, eg. the language resolver.
func WithMiddleware(middlewares ...func(http.Handler) http.Handler) Option {
	return func(r chi.Router) {
		r.Use(middlewares...)
	}
}
