package worker

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotStarted is returned when jobs are performed
	// before the worker is started.
	ErrNotStarted = errors.New("worker not started")

	// ErrStopped is returned when jobs are performed
	// after the worker was stopped.
	ErrStopped = errors.New("worker stopped")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("worker already started")

	// ErrUnknownHandler is returned when a job names
	// a handler that was never registered.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrHandlerExists is returned when a handler name
	// is registered twice.
	ErrHandlerExists = errors.New("handler already registered")
)

// Handler function that will be run by the worker and given
// the arguments of the job.
type Handler func(ctx context.Context, args Args) error

// Worker runs jobs in the background.
type Worker interface {
	// Start the worker with the given context
	Start(ctx context.Context) error
	// Stop the worker, waiting for running jobs
	Stop() error
	// Perform a job as soon as possible
	Perform(job Job) error
	// PerformIn performs a job after the given duration
	PerformIn(job Job, d time.Duration) error
	// Register a Handler
	Register(name string, h Handler) error
}
