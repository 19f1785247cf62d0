package credential

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Product identifies a MoMo API product
type Product string

const (
	ProductCollection   Product = "collection"
	ProductDisbursement Product = "disbursement"
	ProductSandbox      Product = "sandbox"
)

// ErrInvalidConfig is returned when a Config is missing a field its product needs
var ErrInvalidConfig = errors.New("momo: invalid config")

// Config holds the credentials a product client signs its requests with.
// Collection and disbursement each need their own api user and key; sandbox
// provisioning only needs the subscription key.
type Config struct {
	SubscriptionKey string
	APIUser         string
	APIKey          string
	CallbackURI     string
}

// NewConfig creates a Config for the given product with validation
func NewConfig(product Product, subscriptionKey, apiUser, apiKey, callbackURI string) (Config, error) {
	cfg := Config{
		SubscriptionKey: strings.TrimSpace(subscriptionKey),
		APIUser:         strings.TrimSpace(apiUser),
		APIKey:          strings.TrimSpace(apiKey),
		CallbackURI:     strings.TrimSpace(callbackURI),
	}
	if err := cfg.Validate(product); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SandboxConfig creates a Config that can only be used for sandbox provisioning
func SandboxConfig(subscriptionKey string) (Config, error) {
	return NewConfig(ProductSandbox, subscriptionKey, "", "", "")
}

// Validate checks that every field the product needs is present
func (c Config) Validate(product Product) error {
	if c.SubscriptionKey == "" {
		return fmt.Errorf("%w: subscription key is required", ErrInvalidConfig)
	}

	switch product {
	case ProductCollection, ProductDisbursement:
		if c.APIUser == "" {
			return fmt.Errorf("%w: api user is required for %s", ErrInvalidConfig, product)
		}
		if c.APIKey == "" {
			return fmt.Errorf("%w: api key is required for %s", ErrInvalidConfig, product)
		}
	case ProductSandbox:
	default:
		return fmt.Errorf("%w: unknown product %q", ErrInvalidConfig, product)
	}
	return nil
}

// HasCallback reports whether state-changing calls should carry X-Callback-Url
func (c Config) HasCallback() bool {
	return c.CallbackURI != ""
}

// BasicAuth returns the Authorization header value for token endpoints (RFC 7617)
func (c Config) BasicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.APIUser+":"+c.APIKey))
}

// String never prints the api key.
func (c Config) String() string {
	return fmt.Sprintf("Config{APIUser:%s, APIKey:%s, CallbackURI:%s}", c.APIUser, redact(c.APIKey), c.CallbackURI)
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
