package momo

import (
	"net/http"

	"momoapi/internal/metrics"
	"momoapi/internal/provider/base"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option configures a product client
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    metrics.Collector
	baseURL    string
	breaker    *base.CircuitBreakerConfig
	strict     bool
}

func defaultOptions() options {
	return options{
		logger:  log.Logger,
		metrics: metrics.NoOpCollector{},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHTTPClient sets the HTTP client used for every call. Timeouts and TLS
// settings are taken from it as-is.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets the logger. Defaults to the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics reports every round trip to collector
func WithMetrics(collector metrics.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithBaseURL overrides the base URL resolved from the environment.
// The target environment header still carries the environment name.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithCircuitBreaker guards the client's transport with a circuit breaker
func WithCircuitBreaker(cfg base.CircuitBreakerConfig) Option {
	return func(o *options) {
		o.breaker = &cfg
	}
}

// WithStrictAmounts validates amounts, currencies and party ids before any
// network call instead of leaving it to the server.
func WithStrictAmounts() Option {
	return func(o *options) {
		o.strict = true
	}
}
