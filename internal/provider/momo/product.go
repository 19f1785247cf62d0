package momo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"momoapi/internal/domain/credential"
	"momoapi/internal/domain/payment"
	"momoapi/internal/provider"
	"momoapi/internal/provider/base"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	pathToken   = "token/"
	pathBalance = "v1_0/account/balance"
)

// product holds what collection and disbursement share: token acquisition,
// header construction, URL composition and error mapping. It keeps no state
// that changes after construction.
type product struct {
	name        credential.Product
	environment provider.Environment
	cfg         credential.Config
	httpClient  *base.HTTPClient
	validator   *base.RequestValidator
	logger      zerolog.Logger
}

func newProduct(name credential.Product, cfg credential.Config, env provider.Environment, opts []Option) (*product, error) {
	if err := cfg.Validate(name); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	httpClient, err := newTransport(string(name), env, o)
	if err != nil {
		return nil, err
	}

	p := &product{
		name:        name,
		environment: env,
		cfg:         cfg,
		httpClient:  httpClient,
		logger:      productLogger(o.logger, string(name), env),
	}
	if o.strict {
		p.validator = base.NewRequestValidator()
	}
	return p, nil
}

// newTransport resolves the base URL and builds the shared HTTP client
func newTransport(name string, env provider.Environment, o options) (*base.HTTPClient, error) {
	baseURL := o.baseURL
	if baseURL == "" {
		resolved, err := provider.BaseURL(env)
		if err != nil {
			return nil, err
		}
		baseURL = resolved
	}

	logger := productLogger(o.logger, name, env)
	httpClient := base.NewHTTPClient(name, o.httpClient, logger)
	httpClient.SetBaseURL(strings.TrimRight(baseURL, "/"))
	httpClient.SetMetrics(o.metrics)
	if o.breaker != nil {
		httpClient.SetCircuitBreaker(base.NewCircuitBreaker("momo-"+name, *o.breaker, logger, o.metrics))
	}
	return httpClient, nil
}

func productLogger(logger zerolog.Logger, name string, env provider.Environment) zerolog.Logger {
	return logger.With().
		Str("product", name).
		Str("environment", string(env)).
		Logger()
}

// Environment returns the target environment sent with every call
func (p *product) Environment() provider.Environment {
	return p.environment
}

// BaseURL returns the base URL calls are sent to
func (p *product) BaseURL() string {
	return p.httpClient.BaseURL()
}

// GetAccessToken obtains a bearer token for the product. Every operation
// calls it again; tokens are never reused.
func (p *product) GetAccessToken(ctx context.Context) (credential.APIToken, error) {
	headers := map[string]string{
		provider.HeaderSubscriptionKey: p.cfg.SubscriptionKey,
		provider.HeaderAuthorization:   p.cfg.BasicAuth(),
	}

	resp, err := p.httpClient.PostJSON(ctx, provider.OpToken, p.endpoint(pathToken), nil, headers)
	if err != nil {
		return credential.APIToken{}, err
	}
	if err := resp.Err(); err != nil {
		return credential.APIToken{}, err
	}

	token, err := credential.ParseAPIToken(resp.Body)
	if err != nil {
		return credential.APIToken{}, fmt.Errorf("failed to parse token response: %w", err)
	}
	return token, nil
}

// GetBalance returns the available balance of the product account
func (p *product) GetBalance(ctx context.Context) (payment.AccountBalance, error) {
	token, err := p.GetAccessToken(ctx)
	if err != nil {
		return payment.AccountBalance{}, err
	}

	resp, err := p.httpClient.Get(ctx, provider.OpBalance, p.endpoint(pathBalance), p.authHeaders(token))
	if err != nil {
		return payment.AccountBalance{}, err
	}
	if err := resp.Err(); err != nil {
		return payment.AccountBalance{}, err
	}

	balance, err := payment.ParseAccountBalance(resp.Body)
	if err != nil {
		return payment.AccountBalance{}, fmt.Errorf("failed to parse balance response: %w", err)
	}
	return balance, nil
}

// postWithReference mints a reference id and submits a state-changing request.
// The response body is ignored; only the status decides success.
func (p *product) postWithReference(ctx context.Context, op provider.OperationType, path string, payload any) (string, error) {
	token, err := p.GetAccessToken(ctx)
	if err != nil {
		return "", err
	}

	referenceID := uuid.NewString()
	headers := p.authHeaders(token)
	headers[provider.HeaderReferenceID] = referenceID
	if p.cfg.HasCallback() {
		headers[provider.HeaderCallbackURL] = p.cfg.CallbackURI
	}

	resp, err := p.httpClient.PostJSON(ctx, op, p.endpoint(path), payload, headers)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	p.logger.Info().
		Str("operation", string(op)).
		Str("reference_id", referenceID).
		Int("status_code", resp.StatusCode).
		Msg("request accepted")

	return referenceID, nil
}

// getTransaction queries the status of the transaction identified by referenceID
func (p *product) getTransaction(ctx context.Context, op provider.OperationType, path, referenceID string) (payment.Transaction, error) {
	if strings.TrimSpace(referenceID) == "" {
		return payment.Transaction{}, &provider.ValidationError{
			Field:   "referenceId",
			Message: "reference id is required",
		}
	}

	token, err := p.GetAccessToken(ctx)
	if err != nil {
		return payment.Transaction{}, err
	}

	resp, err := p.httpClient.Get(ctx, op, p.endpoint(path, referenceID), p.authHeaders(token))
	if err != nil {
		return payment.Transaction{}, err
	}
	if err := resp.Err(); err != nil {
		return payment.Transaction{}, err
	}

	tx, err := payment.ParseTransaction(resp.Body)
	if err != nil {
		return payment.Transaction{}, fmt.Errorf("failed to parse transaction response: %w", err)
	}
	return tx, nil
}

// endpoint composes /{product}/{path}[/{id}]
func (p *product) endpoint(path string, id ...string) string {
	ep := "/" + string(p.name) + "/" + path
	for _, segment := range id {
		ep += "/" + url.PathEscape(segment)
	}
	return ep
}

func (p *product) authHeaders(token credential.APIToken) map[string]string {
	return map[string]string{
		provider.HeaderSubscriptionKey:   p.cfg.SubscriptionKey,
		provider.HeaderTargetEnvironment: string(p.environment),
		provider.HeaderAuthorization:     token.Bearer(),
		provider.HeaderContentType:       provider.ContentTypeJSON,
	}
}
