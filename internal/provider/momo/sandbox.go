package momo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"momoapi/internal/domain/credential"
	"momoapi/internal/domain/wire"
	"momoapi/internal/provider"
	"momoapi/internal/provider/base"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const pathAPIUser = "/v1_0/apiuser"

// ErrMissingAPIKey is returned when the API key endpoint answers 2xx without an apiKey
var ErrMissingAPIKey = errors.New("momo: api key missing from response")

// Sandbox provisions API users and keys for non-production environments.
// It authenticates with the subscription key only.
type Sandbox struct {
	cfg         credential.Config
	environment provider.Environment
	httpClient  *base.HTTPClient
	logger      zerolog.Logger
}

// APIUserCredentials is a freshly provisioned api user and its key
type APIUserCredentials struct {
	APIUser string
	APIKey  string
}

// NewSandbox creates a sandbox provisioning client
func NewSandbox(cfg credential.Config, env provider.Environment, opts ...Option) (*Sandbox, error) {
	if err := cfg.Validate(credential.ProductSandbox); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	httpClient, err := newTransport(string(credential.ProductSandbox), env, o)
	if err != nil {
		return nil, err
	}

	return &Sandbox{
		cfg:         cfg,
		environment: env,
		httpClient:  httpClient,
		logger:      productLogger(o.logger, string(credential.ProductSandbox), env),
	}, nil
}

// CreateAPIUser registers apiUser, a caller-chosen UUID, with the callback host
// the provider will notify. It returns apiUser on success.
func (s *Sandbox) CreateAPIUser(ctx context.Context, apiUser, callbackHost string) (string, error) {
	if strings.TrimSpace(apiUser) == "" {
		return "", &provider.ValidationError{Field: "apiUser", Message: "api user id is required"}
	}

	headers := s.headers()
	headers[provider.HeaderReferenceID] = apiUser
	payload := struct {
		ProviderCallbackHost string `json:"providerCallbackHost"`
	}{ProviderCallbackHost: callbackHost}

	resp, err := s.httpClient.PostJSON(ctx, provider.OpCreateAPIUser, pathAPIUser, payload, headers)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("operation", string(provider.OpCreateAPIUser)).
		Str("api_user", apiUser).
		Msg("api user created")

	return apiUser, nil
}

// GetAPIUser returns the raw user record. Its fields depend on how far
// provisioning has progressed, so it is not decoded into a struct.
func (s *Sandbox) GetAPIUser(ctx context.Context, apiUser string) (map[string]any, error) {
	if strings.TrimSpace(apiUser) == "" {
		return nil, &provider.ValidationError{Field: "apiUser", Message: "api user id is required"}
	}

	resp, err := s.httpClient.Get(ctx, provider.OpGetAPIUser, userPath(apiUser), s.headers())
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var user map[string]any
	if err := wire.DecodeObject(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse api user response: %w", err)
	}
	return user, nil
}

// CreateAPIKey mints a new API key for apiUser
func (s *Sandbox) CreateAPIKey(ctx context.Context, apiUser string) (string, error) {
	if strings.TrimSpace(apiUser) == "" {
		return "", &provider.ValidationError{Field: "apiUser", Message: "api user id is required"}
	}

	resp, err := s.httpClient.PostJSON(ctx, provider.OpCreateAPIKey, userPath(apiUser)+"/apikey", nil, s.headers())
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	var out struct {
		APIKey string `json:"apiKey"`
	}
	if err := resp.UnmarshalJSON(&out); err != nil {
		return "", fmt.Errorf("failed to parse api key response: %w", err)
	}
	if out.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	s.logger.Info().
		Str("operation", string(provider.OpCreateAPIKey)).
		Str("api_user", apiUser).
		Msg("api key created")

	return out.APIKey, nil
}

// ProvisionUser creates a new api user under a fresh UUID and mints its key
func (s *Sandbox) ProvisionUser(ctx context.Context, callbackHost string) (APIUserCredentials, error) {
	apiUser, err := s.CreateAPIUser(ctx, uuid.NewString(), callbackHost)
	if err != nil {
		return APIUserCredentials{}, err
	}

	apiKey, err := s.CreateAPIKey(ctx, apiUser)
	if err != nil {
		return APIUserCredentials{}, fmt.Errorf("api user %s created but key not issued: %w", apiUser, err)
	}

	return APIUserCredentials{APIUser: apiUser, APIKey: apiKey}, nil
}

// Environment returns the environment the client was built for
func (s *Sandbox) Environment() provider.Environment {
	return s.environment
}

func (s *Sandbox) headers() map[string]string {
	return map[string]string{
		provider.HeaderSubscriptionKey: s.cfg.SubscriptionKey,
		provider.HeaderContentType:     provider.ContentTypeJSON,
	}
}

func userPath(apiUser string) string {
	return pathAPIUser + "/" + url.PathEscape(apiUser)
}
