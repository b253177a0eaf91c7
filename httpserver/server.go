// Package httpserver serves an http.Handler until its context is
// done, then drains the open connections.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server handles the setup and shutdown of the http server
// for an http.Handler.
type Server struct {
	// underlying http server
	httpServer *http.Server

	log *zap.Logger

	// maximum time given to open connections to finish
	// once the server is asked to stop.
	shutdownTimeout time.Duration
}

// New will build a server with the defaults in place.
// You can use Options to override the defaults.
// Default list:
// - Address: ":8080"
// - ReadHeaderTimeout: 10s
// - ShutdownTimeout: 30s
func New(log *zap.Logger, handler http.Handler, options ...Option) *Server {
	const (
		defaultAddr              = ":8080"
		defaultReadHeaderTimeout = 10 * time.Second
		defaultShutdownTimeout   = 30 * time.Second
	)

	if log == nil {
		log = zap.NewNop()
	}

	server := &Server{
		httpServer: &http.Server{
			Handler:           handler,
			Addr:              defaultAddr,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
		log:             log,
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, o := range options {
		o(server)
	}

	return server
}

// Addr returns the address the server listens on
// when started with ListenAndServe.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe listens on the server address and serves
// requests until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts incoming connections on ln until ctx is done.
// Request contexts derive from ctx, so they are cancelled
// when the server stops.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	s.log.Info("starting server", zap.String("address", ln.Addr().String()))

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)

	case <-ctx.Done():
	}

	s.log.Debug("listener shutdown, waiting for connections to drain")

	err := s.shutdown()
	if err != nil {
		return err
	}

	s.log.Debug("server connections are drained")

	return nil
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
