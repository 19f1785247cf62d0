package metrics

import (
	"time"
)

// Collector defines the interface for collecting API client metrics.
// Implementations can export metrics to various backends.
type Collector interface {
	// RecordRequest is called once per HTTP round trip that produced a response.
	RecordRequest(product, operation string, statusCode int, duration time.Duration)

	// RecordTransportError is called when a round trip produced no response.
	RecordTransportError(product, operation string)

	// RecordCircuitState is called when a circuit breaker changes state.
	RecordCircuitState(name string, state CircuitState)
}

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed means the circuit breaker is allowing requests through.
	CircuitClosed CircuitState = iota
	// CircuitOpen means the circuit breaker is blocking requests.
	CircuitOpen
	// CircuitHalfOpen means the circuit breaker is testing if the API has recovered.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// NoOpCollector is the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordRequest does nothing.
func (NoOpCollector) RecordRequest(product, operation string, statusCode int, duration time.Duration) {}

// RecordTransportError does nothing.
func (NoOpCollector) RecordTransportError(product, operation string) {}

// RecordCircuitState does nothing.
func (NoOpCollector) RecordCircuitState(name string, state CircuitState) {}
