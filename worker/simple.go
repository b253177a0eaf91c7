// Package worker runs background jobs, such as refreshing
// exchange rates, inside the current process.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ensures Simple implements the Worker interface.
var _ Worker = (*Simple)(nil)

// Options are used to configure a Simple worker.
type Options struct {
	// Logger writes the worker logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// MaxConcurrency restricts the amount of jobs run in parallel.
	MaxConcurrency int

	// QueueSize is the number of jobs waiting for a free slot
	// before Perform blocks.
	QueueSize int
}

// Simple is a Worker running jobs in goroutines of the current process.
type Simple struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string]Handler
	ctx      context.Context
	cancel   context.CancelFunc

	jobs chan Job
	sem  chan struct{}
	wg   sync.WaitGroup
}

// NewSimple creates a new Simple worker.
func NewSimple(opts Options) *Simple {
	const (
		defaultMaxConcurrency = 5
		defaultQueueSize      = 100
	)

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaultMaxConcurrency
	}

	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	return &Simple{
		logger:   opts.Logger,
		handlers: make(map[string]Handler),
		jobs:     make(chan Job, opts.QueueSize),
		sem:      make(chan struct{}, opts.MaxConcurrency),
	}
}

// Start processes jobs until ctx is done or Stop is called.
func (w *Simple) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrAlreadyStarted
	}

	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)

	go w.run(w.ctx)

	w.logger.Info("worker started")

	return nil
}

// Stop cancels the worker context and waits for running jobs.
// Queued jobs that did not start are dropped.
func (w *Simple) Stop() error {
	w.mu.Lock()
	cancel := w.cancel

	if cancel != nil {
		cancel()
	}
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}

	w.wg.Wait()

	w.logger.Info("worker stopped")

	return nil
}

// Perform enqueues a new job.
func (w *Simple) Perform(job Job) error {
	w.mu.RLock()
	_, ok := w.handlers[job.Handler]
	ctx := w.ctx
	w.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: \"%s\"", ErrUnknownHandler, job.Handler)
	}

	if ctx == nil {
		return ErrNotStarted
	}

	if ctx.Err() != nil {
		return ErrStopped
	}

	w.logger.Debug("enqueuing job", zap.Stringer("job", job))

	select {
	case w.jobs <- job:
		return nil

	case <-ctx.Done():
		return fmt.Errorf("enqueue job: %w", ctx.Err())
	}
}

// PerformIn performs a job after d.
func (w *Simple) PerformIn(job Job, d time.Duration) error {
	w.mu.RLock()
	ctx := w.ctx

	switch {
	case ctx == nil:
		w.mu.RUnlock()

		return ErrNotStarted

	case ctx.Err() != nil:
		w.mu.RUnlock()

		return ErrStopped
	}

	w.wg.Add(1)
	w.mu.RUnlock()

	go func() {
		defer w.wg.Done()

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			err := w.Perform(job)
			if err != nil {
				w.logger.Error(
					"unable to enqueue delayed job",
					zap.Stringer("job", job),
					zap.Error(err),
				)
			}

		case <-ctx.Done():
		}
	}()

	return nil
}

// Register sets the handler run for jobs named name.
func (w *Simple) Register(name string, h Handler) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.handlers[name]; ok {
		return fmt.Errorf("%w: \"%s\"", ErrHandlerExists, name)
	}

	w.handlers[name] = h

	w.logger.Debug("register job", zap.String("job", name))

	return nil
}

func (w *Simple) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case job := <-w.jobs:
			select {
			case w.sem <- struct{}{}:
			case <-ctx.Done():
				return
			}

			w.wg.Add(1)

			go func() {
				defer func() {
					<-w.sem
					w.wg.Done()
				}()

				w.process(ctx, job)
			}()
		}
	}
}

func (w *Simple) process(ctx context.Context, job Job) {
	w.mu.RLock()
	h := w.handlers[job.Handler]
	w.mu.RUnlock()

	start := time.Now()

	err := h(ctx, job.Args)
	if err != nil {
		w.logger.Error(
			"unable to process job",
			zap.Stringer("job", job),
			zap.Error(err),
		)

		return
	}

	w.logger.Debug(
		"job processed",
		zap.String("job", job.Handler),
		zap.Duration("duration", time.Since(start)),
	)
}
