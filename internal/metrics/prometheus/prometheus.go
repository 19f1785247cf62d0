package prometheus

import (
	"strconv"
	"time"

	"momoapi/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements metrics.Collector for Prometheus.
type PrometheusCollector struct {
	namespace string

	requests        *prometheus.CounterVec
	transportErrors *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	circuitState    *prometheus.GaugeVec
	circuitOpens    *prometheus.CounterVec
}

// NewPrometheusCollector creates a collector. Call Register to expose it.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of MoMo API requests per product, operation and HTTP status",
			},
			[]string{"product", "operation", "status"},
		),
		transportErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transport_errors_total",
				Help:      "Total number of MoMo API requests that produced no HTTP response",
			},
			[]string{"product", "operation"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "MoMo API request latency per product and operation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"product", "operation"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_state",
				Help:      "Current circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"name"},
		),
		circuitOpens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "circuit_opens_total",
				Help:      "Total number of circuit breaker opens",
			},
			[]string{"name"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (pc *PrometheusCollector) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		pc.requests,
		pc.transportErrors,
		pc.latency,
		pc.circuitState,
		pc.circuitOpens,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers all metrics with the default registry and panics on error.
func (pc *PrometheusCollector) MustRegister() {
	if err := pc.Register(prometheus.DefaultRegisterer); err != nil {
		panic(err)
	}
}

// RecordRequest records a completed round trip.
func (pc *PrometheusCollector) RecordRequest(product, operation string, statusCode int, duration time.Duration) {
	pc.requests.WithLabelValues(product, operation, strconv.Itoa(statusCode)).Inc()
	pc.latency.WithLabelValues(product, operation).Observe(duration.Seconds())
}

// RecordTransportError records a round trip that produced no response.
func (pc *PrometheusCollector) RecordTransportError(product, operation string) {
	pc.transportErrors.WithLabelValues(product, operation).Inc()
}

// RecordCircuitState records a circuit breaker state change.
func (pc *PrometheusCollector) RecordCircuitState(name string, state metrics.CircuitState) {
	pc.circuitState.WithLabelValues(name).Set(float64(state))
	if state == metrics.CircuitOpen {
		pc.circuitOpens.WithLabelValues(name).Inc()
	}
}

var _ metrics.Collector = (*PrometheusCollector)(nil)
