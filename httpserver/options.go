package httpserver

import (
	"time"
)

// An Option configures a Server using the functional options paradigm.
type Option func(*Server)

// WithAddress will set the address field of the server.
func WithAddress(address string) Option {
	return func(s *Server) {
		s.httpServer.Addr = address
	}
}

// WithServerTimeouts will set the timeouts for the underlying HTTP server.
func WithServerTimeouts(
	writeTimeout,
	readTimeout,
	idleTimeout,
	readHeaderTimeout time.Duration,
) Option {
	return func(s *Server) {
		s.httpServer.WriteTimeout = writeTimeout
		s.httpServer.ReadTimeout = readTimeout
		s.httpServer.IdleTimeout = idleTimeout
		s.httpServer.ReadHeaderTimeout = readHeaderTimeout
	}
}

// WithShutdownTimeout bounds the time open connections are
// given to finish once the server stops.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}
