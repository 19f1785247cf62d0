package momo

import (
	"fmt"
	"sort"
	"strings"

	"momoapi/internal/domain/credential"
	"momoapi/internal/provider"
)

// Setting keys accepted by SettingsFromMap
const (
	KeyEnvironment     = "environment"
	KeySubscriptionKey = "subscription_key"
	KeyAPIUser         = "api_user"
	KeyAPIKey          = "api_key"
	KeyCallbackURL     = "callback_url"
)

// Settings is the flat option set product clients are built from
type Settings struct {
	Environment     string
	SubscriptionKey string
	APIUser         string
	APIKey          string
	CallbackURL     string
}

// SettingsFromMap builds Settings from named options. Missing keys default to
// empty; unknown keys are rejected.
func SettingsFromMap(values map[string]string) (Settings, error) {
	var s Settings
	var unknown []string
	for key, value := range values {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case KeyEnvironment:
			s.Environment = value
		case KeySubscriptionKey:
			s.SubscriptionKey = value
		case KeyAPIUser:
			s.APIUser = value
		case KeyAPIKey:
			s.APIKey = value
		case KeyCallbackURL:
			s.CallbackURL = value
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Settings{}, fmt.Errorf("%w: unknown settings %s", credential.ErrInvalidConfig, strings.Join(unknown, ", "))
	}
	return s, nil
}

// Factory builds product clients that share one environment and credential set
type Factory struct {
	environment provider.Environment
	settings    Settings
	opts        []Option
}

// NewFactory resolves the environment and checks the subscription key.
// Product credentials are checked when the product client is built.
func NewFactory(settings Settings, opts ...Option) (*Factory, error) {
	env, err := provider.ParseEnvironment(settings.Environment)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(settings.SubscriptionKey) == "" {
		return nil, fmt.Errorf("%w: subscription key is required", credential.ErrInvalidConfig)
	}

	return &Factory{
		environment: env,
		settings:    settings,
		opts:        opts,
	}, nil
}

// Environment returns the resolved target environment
func (f *Factory) Environment() provider.Environment {
	return f.environment
}

// Collection builds a collection client
func (f *Factory) Collection() (*Collection, error) {
	cfg, err := f.config(credential.ProductCollection)
	if err != nil {
		return nil, err
	}
	return NewCollection(cfg, f.environment, f.opts...)
}

// Disbursement builds a disbursement client
func (f *Factory) Disbursement() (*Disbursement, error) {
	cfg, err := f.config(credential.ProductDisbursement)
	if err != nil {
		return nil, err
	}
	return NewDisbursement(cfg, f.environment, f.opts...)
}

// Sandbox builds a sandbox provisioning client
func (f *Factory) Sandbox() (*Sandbox, error) {
	cfg, err := credential.SandboxConfig(f.settings.SubscriptionKey)
	if err != nil {
		return nil, err
	}
	return NewSandbox(cfg, f.environment, f.opts...)
}

func (f *Factory) config(product credential.Product) (credential.Config, error) {
	return credential.NewConfig(
		product,
		f.settings.SubscriptionKey,
		f.settings.APIUser,
		f.settings.APIKey,
		f.settings.CallbackURL,
	)
}
