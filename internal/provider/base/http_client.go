package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"momoapi/internal/metrics"
	"momoapi/internal/provider"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// DefaultTimeout applies when the caller does not supply an *http.Client
const DefaultTimeout = 30 * time.Second

// HTTPClient provides common HTTP functionality for product clients
type HTTPClient struct {
	client  *http.Client
	baseURL string
	name    string // product name for logging and metrics
	logger  zerolog.Logger
	metrics metrics.Collector
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPClient creates a new HTTP client. A nil client gets DefaultTimeout.
func NewHTTPClient(productName string, client *http.Client, logger zerolog.Logger) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &HTTPClient{
		client:  client,
		name:    productName,
		logger:  logger,
		metrics: metrics.NoOpCollector{},
	}
}

// SetBaseURL sets the base URL for all requests
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetMetrics sets the collector every round trip is reported to
func (c *HTTPClient) SetMetrics(collector metrics.Collector) {
	if collector != nil {
		c.metrics = collector
	}
}

// SetCircuitBreaker routes every round trip through cb
func (c *HTTPClient) SetCircuitBreaker(cb *gobreaker.CircuitBreaker) {
	c.breaker = cb
}

// BaseURL returns the base URL requests are sent to
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// PostJSON makes a POST request. A nil payload sends no body.
func (c *HTTPClient) PostJSON(ctx context.Context, op provider.OperationType, endpoint string, payload any, headers map[string]string) (*HTTPResponse, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		body = bytes.NewReader(b)
		if _, ok := headers[provider.HeaderContentType]; !ok {
			headers = withHeader(headers, provider.HeaderContentType, provider.ContentTypeJSON)
		}
	}

	return c.do(ctx, op, http.MethodPost, endpoint, body, headers)
}

// Get makes a GET request
func (c *HTTPClient) Get(ctx context.Context, op provider.OperationType, endpoint string, headers map[string]string) (*HTTPResponse, error) {
	return c.do(ctx, op, http.MethodGet, endpoint, nil, headers)
}

func (c *HTTPClient) do(ctx context.Context, op provider.OperationType, method, endpoint string, body io.Reader, headers map[string]string) (*HTTPResponse, error) {
	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", fmt.Sprintf("momoapi/%s", c.name))
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// Never log headers: they carry the api key and bearer token
	c.logger.Debug().
		Str("product", c.name).
		Str("operation", string(op)).
		Str("method", method).
		Str("url", url).
		Msg("making HTTP request")

	start := time.Now()
	resp, err := c.roundTrip(req)
	if err != nil {
		c.metrics.RecordTransportError(c.name, string(op))
		c.logger.Error().
			Str("product", c.name).
			Str("operation", string(op)).
			Str("url", url).
			Err(err).
			Msg("HTTP request failed")
		return nil, &provider.TransportError{Op: method, URL: url, Err: err}
	}

	duration := time.Since(start)
	c.metrics.RecordRequest(c.name, string(op), resp.StatusCode, duration)

	c.logger.Debug().
		Str("product", c.name).
		Str("operation", string(op)).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(resp.Body)).
		Dur("duration", duration).
		Msg("received HTTP response")

	return resp, nil
}

// roundTrip sends req, through the circuit breaker when one is configured.
// 5xx responses count as breaker failures but are still returned to the caller.
func (c *HTTPClient) roundTrip(req *http.Request) (*HTTPResponse, error) {
	if c.breaker == nil {
		return c.send(req)
	}

	var out *HTTPResponse
	_, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.send(req)
		if err != nil {
			return nil, err
		}
		out = resp
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, errServerFailure
		}
		return nil, nil
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if out != nil {
		return out, nil
	}
	return nil, err
}

func (c *HTTPClient) send(req *http.Request) (*HTTPResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return c.handleResponse(resp)
}

// handleResponse processes the HTTP response
func (c *HTTPClient) handleResponse(resp *http.Response) (*HTTPResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

func withHeader(headers map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		out[k] = v
	}
	out[key] = value
	return out
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err maps a non-2xx response to a *provider.Error and returns nil otherwise
func (r *HTTPResponse) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return provider.ErrorFromResponse(r.StatusCode, r.Body)
}

// UnmarshalJSON unmarshals the response body into the provided struct
func (r *HTTPResponse) UnmarshalJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// String returns the response body as a string
func (r *HTTPResponse) String() string {
	return string(r.Body)
}
