// Command moneyrates manages the exchange rates used to convert money.
//
// Usage:
//
//	moneyrates update
//	moneyrates clear [-backend name] [-all]
//	moneyrates convert -amount 10 -from USD -to EUR
//	moneyrates serve [-addr :8080] [-refresh 1h]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/oklog/run"
	"github.com/purposeinplay/go-money/exchange"
	"github.com/purposeinplay/go-money/http/ratesapi"
	"github.com/purposeinplay/go-money/http/router"
	"github.com/purposeinplay/go-money/httpserver"
	"github.com/purposeinplay/go-money/l10n"
	"github.com/purposeinplay/go-money/logger"
	"github.com/purposeinplay/go-money/money"
	"github.com/purposeinplay/go-money/psqlutil"
	"github.com/purposeinplay/go-money/worker"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var errUsage = errors.New("usage: moneyrates update|clear|convert|serve [flags]")

type config struct {
	AppID        string                    `env:"MONEY_RATES_APP_ID"`
	BaseCurrency string                    `env:"MONEY_RATES_BASE_CURRENCY"`
	Postgres     psqlutil.ConnectionConfig `envPrefix:"POSTGRES_"`
	Log          logger.Config             `envPrefix:"LOG_"`
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, err := parseCommand(args[0], args[1:])
	if err != nil {
		return err
	}

	var cfg config

	err = env.Parse(&cfg)
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if cfg.Log.Service == "" {
		cfg.Log.Service = "moneyrates"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("new logger: %w", err)
	}

	defer func() {
		_ = log.Sync()
	}()

	db, err := psqlutil.GormOpen(ctx, log, cfg.Postgres.DSN())
	if err != nil {
		return err
	}

	store := exchange.NewGormStore(db, log)

	err = store.Migrate(ctx)
	if err != nil {
		return err
	}

	fetcher := exchange.NewOpenExchangeRates(
		cfg.AppID,
		exchange.WithBaseCurrency(cfg.BaseCurrency),
		exchange.WithFetcherLogger(log),
	)

	return cmd.execute(ctx, deps{
		store:   store,
		fetcher: fetcher,
		logger:  log,
		out:     out,
	})
}

type deps struct {
	store   exchange.Store
	fetcher exchange.Fetcher
	logger  *zap.Logger
	out     io.Writer
}

type command interface {
	execute(ctx context.Context, d deps) error
}

func parseCommand(name string, args []string) (command, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	switch name {
	case "update":
		err := fs.Parse(args)
		if err != nil {
			return nil, err
		}

		return updateCommand{}, nil

	case "clear":
		c := clearCommand{}

		fs.StringVar(&c.backend, "backend", "", "backend to clear, defaults to the rates fetcher")
		fs.BoolVar(&c.all, "all", false, "clear the rates of every backend")

		err := fs.Parse(args)
		if err != nil {
			return nil, err
		}

		return c, nil

	case "convert":
		c := convertCommand{}

		fs.StringVar(&c.amount, "amount", "", "amount to convert")
		fs.StringVar(&c.from, "from", "", "source currency")
		fs.StringVar(&c.to, "to", "", "target currency")
		fs.StringVar(&c.lang, "lang", "", "language used to format the result")

		err := fs.Parse(args)
		if err != nil {
			return nil, err
		}

		if c.amount == "" || c.from == "" || c.to == "" {
			return nil, errors.New("convert: -amount, -from and -to are required")
		}

		return c, nil

	case "serve":
		c := serveCommand{}

		fs.StringVar(&c.addr, "addr", ":8080", "address to listen on")
		fs.DurationVar(&c.refresh, "refresh", time.Hour, "rates refresh interval, 0 disables refreshing")

		err := fs.Parse(args)
		if err != nil {
			return nil, err
		}

		return c, nil

	default:
		return nil, errUsage
	}
}

type updateCommand struct{}

func (updateCommand) execute(ctx context.Context, d deps) error {
	return exchange.Refresh(ctx, d.fetcher, d.store)
}

type clearCommand struct {
	backend string
	all     bool
}

func (c clearCommand) execute(ctx context.Context, d deps) error {
	backend := c.backend

	switch {
	case c.all:
		backend = ""
	case backend == "":
		backend = d.fetcher.Name()
	}

	return d.store.ClearRates(ctx, backend)
}

type convertCommand struct {
	amount string
	from   string
	to     string
	lang   string
}

func (c convertCommand) execute(ctx context.Context, d deps) error {
	settings, err := money.LoadSettings()
	if err != nil {
		return err
	}

	if c.lang != "" {
		settings.LanguageCode = c.lang
	}

	converter := exchange.NewConverter(d.store, d.fetcher.Name(), d.logger)

	moneyEnv := money.NewEnvironment(
		settings,
		money.WithConverter(converter),
		money.WithLogger(d.logger),
	)

	m, err := moneyEnv.NewFromString(c.amount, c.from)
	if err != nil {
		return err
	}

	converted, err := converter.Convert(ctx, m, c.to)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(d.out, "%s = %s\n", m, moneyEnv.Bind(converted))

	return err
}

const refreshRatesJob = "refresh_rates"

type serveCommand struct {
	addr    string
	refresh time.Duration
}

func (c serveCommand) execute(ctx context.Context, d deps) error {
	settings, err := money.LoadSettings()
	if err != nil {
		return err
	}

	w := worker.NewSimple(worker.Options{Logger: d.logger, MaxConcurrency: 1})

	err = w.Register(refreshRatesJob, func(ctx context.Context, _ worker.Args) error {
		return exchange.Refresh(ctx, d.fetcher, d.store)
	})
	if err != nil {
		return err
	}

	err = w.Start(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = w.Stop()
	}()

	converter := exchange.NewConverter(d.store, d.fetcher.Name(), d.logger)

	moneyEnv := money.NewEnvironment(
		settings,
		money.WithConverter(converter),
		money.WithLogger(d.logger),
	)

	fallback, err := l10n.Parse(settings.LanguageCode)
	if err != nil {
		fallback = language.AmericanEnglish
	}

	mux := router.New(
		router.WithRequestID(),
		router.WithRealIP(),
		router.WithLogger(d.logger),
		router.WithRecoverer(),
		router.WithCors(router.DefaultCorsOptions),
		router.WithMiddleware(l10n.NewResolver(fallback).Middleware),
		router.WithHealthcheck("/healthz", nil),
	)

	ratesapi.New(converter, moneyEnv).Routes(mux)

	server := httpserver.New(d.logger, mux, httpserver.WithAddress(c.addr))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var group run.Group

	group.Add(func() error {
		return server.ListenAndServe(ctx)
	}, func(error) {
		cancel()
	})

	if c.refresh > 0 {
		group.Add(func() error {
			schedule(ctx, w, worker.Job{Handler: refreshRatesJob}, c.refresh, d.logger)

			return nil
		}, func(error) {
			cancel()
		})
	}

	return group.Run()
}

// schedule performs job right away, then every interval until ctx is done.
func schedule(
	ctx context.Context,
	w worker.Worker,
	job worker.Job,
	every time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		err := w.Perform(job)
		if err != nil {
			log.Error("schedule job", zap.Stringer("job", job), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
		}
	}
}
