package base

import (
	"errors"
	"time"

	"momoapi/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned (wrapped in a *provider.TransportError) when the
// breaker rejects a request without sending it.
var ErrCircuitOpen = errors.New("momo: circuit breaker open")

var errServerFailure = errors.New("server failure")

// CircuitBreakerConfig configures the optional transport circuit breaker.
type CircuitBreakerConfig struct {
	// MaxRequests is the number of requests allowed through while half-open. Default: 1
	MaxRequests uint32

	// Interval is the cyclic period of the closed state after which counts are
	// cleared. 0 never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open. Default: 30s
	Timeout time.Duration

	// ConsecutiveFailures trips the breaker. Transport errors and 5xx count. Default: 5
	ConsecutiveFailures uint32
}

// DefaultCircuitBreakerConfig returns sensible defaults
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests:         1,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// NewCircuitBreaker builds a breaker that logs and reports its state changes
func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, logger zerolog.Logger, collector metrics.Collector) *gobreaker.CircuitBreaker {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")

			var state metrics.CircuitState
			switch to {
			case gobreaker.StateClosed:
				state = metrics.CircuitClosed
			case gobreaker.StateHalfOpen:
				state = metrics.CircuitHalfOpen
			case gobreaker.StateOpen:
				state = metrics.CircuitOpen
			}
			collector.RecordCircuitState(name, state)
		},
	})
}
