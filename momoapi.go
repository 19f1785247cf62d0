// Package momoapi is a client for the MTN Mobile Money (MoMo) open API:
// collection, disbursement and sandbox user provisioning.
//
//	factory, err := momoapi.NewFactory(momoapi.Settings{
//		Environment:     "sandbox",
//		SubscriptionKey: "...",
//		APIUser:         "...",
//		APIKey:          "...",
//	})
//	collection, err := factory.Collection()
//	referenceID, err := collection.QuickPay(ctx, "100", "46733123450", "order-1", "EUR")
//	tx, err := collection.GetPaymentStatus(ctx, referenceID)
package momoapi

import (
	"momoapi/internal/config"
	"momoapi/internal/domain/credential"
	"momoapi/internal/domain/payment"
	"momoapi/internal/metrics"
	"momoapi/internal/metrics/prometheus"
	"momoapi/internal/provider"
	"momoapi/internal/provider/base"
	"momoapi/internal/provider/momo"
)

// Re-export client types
type (
	Settings           = momo.Settings
	Factory            = momo.Factory
	Option             = momo.Option
	Collection         = momo.Collection
	Disbursement       = momo.Disbursement
	Sandbox            = momo.Sandbox
	APIUserCredentials = momo.APIUserCredentials
	Poller             = momo.Poller
	PollerOptions      = momo.PollerOptions
	StatusFunc         = momo.StatusFunc

	CircuitBreakerConfig = base.CircuitBreakerConfig
	MetricsCollector     = metrics.Collector
	PrometheusCollector  = prometheus.PrometheusCollector
)

// Re-export domain types
type (
	Config            = credential.Config
	APIToken          = credential.APIToken
	Party             = payment.Party
	PaymentRequest    = payment.PaymentRequest
	TransferRequest   = payment.TransferRequest
	RefundRequest     = payment.RefundRequest
	RequestOption     = payment.RequestOption
	Transaction       = payment.Transaction
	TransactionStatus = payment.Status
	Reason            = payment.Reason
	AccountBalance    = payment.AccountBalance
)

// Re-export error types
type (
	Error           = provider.Error
	ErrorKind       = provider.Kind
	TransportError  = provider.TransportError
	ValidationError = provider.ValidationError
	Environment     = provider.Environment
)

const (
	StatusSuccessful = payment.StatusSuccessful
	StatusPending    = payment.StatusPending
	StatusFailed     = payment.StatusFailed

	DefaultCurrency = payment.DefaultCurrency

	SandboxURL    = provider.SandboxURL
	ProductionURL = provider.ProductionURL
)

var (
	ErrMomo                   = provider.ErrMomo
	ErrBadRequest             = provider.ErrBadRequest
	ErrInvalidSubscriptionKey = provider.ErrInvalidSubscriptionKey
	ErrNotFound               = provider.ErrNotFound
	ErrConflict               = provider.ErrConflict
	ErrInternalServer         = provider.ErrInternalServer
	ErrTransport              = provider.ErrTransport
	ErrInvalidRequest         = provider.ErrInvalidRequest
	ErrInvalidConfig          = credential.ErrInvalidConfig
	ErrMissingAPIKey          = momo.ErrMissingAPIKey
	ErrStillPending           = momo.ErrStillPending
	ErrCircuitOpen            = base.ErrCircuitOpen
)

// Constructors and options
var (
	NewFactory       = momo.NewFactory
	SettingsFromMap  = momo.SettingsFromMap
	NewCollection    = momo.NewCollection
	NewDisbursement  = momo.NewDisbursement
	NewSandbox       = momo.NewSandbox
	NewPoller        = momo.NewPoller
	NewConfig        = credential.NewConfig
	SandboxConfig    = credential.SandboxConfig
	ParseEnvironment = provider.ParseEnvironment
	NewError         = provider.NewError

	WithHTTPClient     = momo.WithHTTPClient
	WithLogger         = momo.WithLogger
	WithMetrics        = momo.WithMetrics
	WithBaseURL        = momo.WithBaseURL
	WithCircuitBreaker = momo.WithCircuitBreaker
	WithStrictAmounts  = momo.WithStrictAmounts

	NewPaymentRequest  = payment.NewPaymentRequest
	NewTransferRequest = payment.NewTransferRequest
	NewRefundRequest   = payment.NewRefundRequest
	WithCurrency       = payment.WithCurrency
	WithPayerMessage   = payment.WithPayerMessage
	WithPayeeNote      = payment.WithPayeeNote

	NewPrometheusCollector      = prometheus.NewPrometheusCollector
	DefaultCircuitBreakerConfig = base.DefaultCircuitBreakerConfig
	DefaultPollerOptions        = momo.DefaultPollerOptions
	GetAvailableEnvironments    = provider.GetAvailableEnvironments
)

// Products
const (
	ProductCollection   = credential.ProductCollection
	ProductDisbursement = credential.ProductDisbursement
	ProductSandbox      = credential.ProductSandbox
)

// FactoryFromEnv builds a Factory from MOMO_* environment variables, loading
// envFiles (default ".env") first when they exist.
func FactoryFromEnv(envFiles ...string) (*Factory, error) {
	return config.NewFactory(envFiles...)
}
