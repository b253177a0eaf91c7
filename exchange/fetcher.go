package exchange

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Fetcher downloads the latest rates from a provider.
type Fetcher interface {
	// Name is the backend name the rates are stored under.
	Name() string

	// FetchRates returns the base currency and the rates against it.
	FetchRates(ctx context.Context) (string, map[string]decimal.Decimal, error)
}

// Refresh fetches the latest rates with f and stores them under f.Name().
func Refresh(ctx context.Context, f Fetcher, s Store) error {
	base, rates, err := f.FetchRates(ctx)
	if err != nil {
		return err
	}

	err = s.UpdateRates(ctx, f.Name(), base, rates)
	if err != nil {
		return fmt.Errorf("store rates: %w", err)
	}

	return nil
}

// OpenExchangeRatesURL is the latest rates endpoint of openexchangerates.org.
const OpenExchangeRatesURL = "https://openexchangerates.org/api/latest.json"

// ensure OpenExchangeRates implements the Fetcher interface.
var _ Fetcher = (*OpenExchangeRates)(nil)

// OpenExchangeRates fetches rates from openexchangerates.org.
type OpenExchangeRates struct {
	url          string
	appID        string
	baseCurrency string
	client       *http.Client
	logger       *zap.Logger
	attempts     uint
	delay        time.Duration
}

// FetcherOption configures an OpenExchangeRates fetcher.
type FetcherOption func(*OpenExchangeRates)

// WithURL overrides OpenExchangeRatesURL.
func WithURL(u string) FetcherOption {
	return func(o *OpenExchangeRates) {
		o.url = u
	}
}

// WithBaseCurrency asks for rates against base instead of USD.
func WithBaseCurrency(base string) FetcherOption {
	return func(o *OpenExchangeRates) {
		o.baseCurrency = base
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(o *OpenExchangeRates) {
		o.client = c
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(l *zap.Logger) FetcherOption {
	return func(o *OpenExchangeRates) {
		o.logger = l
	}
}

// WithRetry sets the number of attempts and the delay between them.
func WithRetry(attempts uint, delay time.Duration) FetcherOption {
	return func(o *OpenExchangeRates) {
		o.attempts = attempts
		o.delay = delay
	}
}

// NewOpenExchangeRates returns a fetcher authenticated with appID.
func NewOpenExchangeRates(appID string, opts ...FetcherOption) *OpenExchangeRates {
	const (
		defaultAttempts = 3
		defaultDelay    = time.Second
		defaultTimeout  = 10 * time.Second
	)

	o := &OpenExchangeRates{
		url:      OpenExchangeRatesURL,
		appID:    appID,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   zap.NewNop(),
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Name implements the Fetcher interface.
func (*OpenExchangeRates) Name() string {
	return "openexchangerates.org"
}

type latestRatesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates implements the Fetcher interface.
func (o *OpenExchangeRates) FetchRates(
	ctx context.Context,
) (string, map[string]decimal.Decimal, error) {
	reqURL, err := o.requestURL()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrFetchRates, err)
	}

	var resp latestRatesResponse

	err = retry.Do(
		func() error {
			return o.get(ctx, reqURL, &resp)
		},
		retry.Attempts(o.attempts),
		retry.Delay(o.delay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			o.logger.Warn(
				"fetch rates attempt failed",
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrFetchRates, err)
	}

	o.logger.Info(
		"exchange rates fetched",
		zap.String("backend", o.Name()),
		zap.String("base_currency", resp.Base),
		zap.Int("rates", len(resp.Rates)),
	)

	return resp.Base, resp.Rates, nil
}

func (o *OpenExchangeRates) requestURL() (string, error) {
	u, err := url.Parse(o.url)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	q := u.Query()
	q.Set("app_id", o.appID)

	if o.baseCurrency != "" {
		q.Set("base", o.baseCurrency)
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (o *OpenExchangeRates) get(
	ctx context.Context,
	reqURL string,
	resp *latestRatesResponse,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("new request: %w", err))
	}

	res, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)

		err := fmt.Errorf("unexpected status %d", res.StatusCode)

		if res.StatusCode < http.StatusInternalServerError {
			return retry.Unrecoverable(err)
		}

		return err
	}

	err = jsoniter.NewDecoder(res.Body).Decode(resp)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
