package poloniex

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"poloniex/internal/cache"
	"poloniex/internal/circuitbreaker"
	httpClient "poloniex/internal/http"
	"poloniex/internal/nonce"
	"poloniex/internal/ratelimit"
	"poloniex/pkg/core"
)

// Client issues public and signed trading calls against the Poloniex HTTP API.
// Credentials and endpoints are fixed at construction. A Client is safe for
// concurrent use; nonces stay strictly increasing across goroutines.
type Client struct {
	config         *core.Config
	credentials    core.Credentials
	endpoints      core.Endpoints
	httpClient     *httpClient.Client
	nonces         *nonce.Generator
	signer         *Signer
	rateLimiter    *ratelimit.RateLimiter
	circuitBreaker *circuitbreaker.Breaker
	cache          *cache.Cache[httpClient.Response]
	errorLog       ErrorLogger
	logger         zerolog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	Logger   zerolog.Logger
	ErrorLog ErrorLogger
	Nonces   *nonce.Generator
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithErrorLogger returns an option that sets the sink receiving
// exchange-reported error messages. Defaults to the client's logger.
func WithErrorLogger(sink ErrorLogger) Option {
	return func(o *Options) {
		o.ErrorLog = sink
	}
}

// WithNonceGenerator returns an option that shares a nonce generator, for
// example between two clients using the same API key.
func WithNonceGenerator(g *nonce.Generator) Option {
	return func(o *Options) {
		o.Nonces = g
	}
}

// New creates a Client. Only transport settings are validated here; missing
// credentials surface on the first private call.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Nonces == nil {
		options.Nonces = nonce.New()
	}
	if options.ErrorLog == nil {
		options.ErrorLog = NewZerologErrorLogger(options.Logger)
	}

	hc, err := httpClient.NewClient(&httpClient.Config{
		Timeout:            config.Timeout,
		InsecureSkipVerify: config.InsecureSkipVerify,
		UserAgent:          config.UserAgent,
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var rl *ratelimit.RateLimiter
	if config.RateLimitRequests > 0 {
		rl = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}

	var cb *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		cb = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		})
	}

	var replies *cache.Cache[httpClient.Response]
	if config.CacheTTL > 0 {
		replies = cache.New[httpClient.Response](config.CacheTTL)
	}

	var creds core.Credentials
	if config.Credentials != nil {
		creds = *config.Credentials
	}

	return &Client{
		config:         config,
		credentials:    creds,
		endpoints:      config.Endpoints,
		httpClient:     hc,
		nonces:         options.Nonces,
		signer:         NewSigner(creds),
		rateLimiter:    rl,
		circuitBreaker: cb,
		cache:          replies,
		errorLog:       options.ErrorLog,
		logger:         options.Logger,
	}, nil
}

// Close releases pooled connections. Calls made after Close fail with a
// transport error.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Endpoints returns the configured base URLs.
func (c *Client) Endpoints() core.Endpoints {
	return c.endpoints
}

// CallPublic issues GET <public>?<params>. Empty parameters are dropped.
// Transport and decode failures are returned as errors; an error field in
// the reply is logged and handed back inside the Response. With a cache
// configured, a successful reply is reused for identical queries until it
// expires.
func (c *Client) CallPublic(ctx context.Context, params core.Params) (*Response, error) {
	command := commandOf(params)

	query, err := params.Encode()
	if err != nil {
		return nil, core.NewInvalidArgumentError(command, err.Error())
	}

	if c.cache != nil {
		if hit, ok := c.cache.Get(query); ok {
			c.logger.Debug().Str("command", command).Msg("cache hit")
			return decodeResponse(command, hit.StatusCode, bytes.Clone(hit.Body))
		}
	}

	if err := c.admit(ctx, ratelimit.EndpointPublic, command); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.endpoints.Public, query)
	out, err := c.complete(command, resp, err)
	if err == nil && c.cache != nil && !out.Failed() && out.StatusCode < 300 {
		c.cache.Set(query, httpClient.Response{
			StatusCode: resp.StatusCode,
			Body:       bytes.Clone(resp.Body),
		})
	}
	return out, err
}

// CallPrivate signs params with a fresh nonce and POSTs them to the trading
// endpoint. It fails with a configuration error, without touching the
// network, when the key or secret is empty. The nonce is drawn only after
// the rate limiter admits the call, so throttled calls still leave in
// nonce order.
func (c *Client) CallPrivate(ctx context.Context, params core.Params) (*Response, error) {
	command := commandOf(params)

	if !c.credentials.Valid() {
		return nil, core.NewConfigurationError(command, core.ErrNoCredentials)
	}

	if _, err := params.Encode(); err != nil {
		return nil, core.NewInvalidArgumentError(command, err.Error())
	}

	if err := c.admit(ctx, ratelimit.EndpointTrading, command); err != nil {
		return nil, err
	}

	signed, err := c.signer.Sign(params, c.nonces.Next())
	if err != nil {
		return nil, core.NewInvalidArgumentError(command, err.Error())
	}

	resp, err := c.httpClient.PostForm(ctx, c.endpoints.Trading, signed.Body,
		httpClient.WithHeaders(signed.Headers))
	return c.complete(command, resp, err)
}

func (c *Client) admit(ctx context.Context, endpoint ratelimit.Endpoint, command string) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, endpoint); err != nil {
			return core.NewTransportError(command, fmt.Errorf("rate limit: %w", err))
		}
	}
	if c.circuitBreaker != nil && !c.circuitBreaker.Allow() {
		return core.NewTransportError(command, core.ErrCircuitBreakerOpen)
	}
	return nil
}

func (c *Client) complete(command string, resp *httpClient.Response, err error) (*Response, error) {
	if c.circuitBreaker != nil {
		c.circuitBreaker.Record(err == nil)
	}
	if err != nil {
		c.logger.Error().Err(err).Str("command", command).Msg("request failed")
		return nil, core.NewTransportError(command, err)
	}

	out, err := decodeResponse(command, resp.StatusCode, resp.Body)
	if err != nil {
		c.logger.Error().Err(err).
			Str("command", command).
			Int("status", resp.StatusCode).
			Msg("decode response")
		return nil, err
	}

	if out.Failed() {
		c.errorLog.LogError(out.ErrorMessage)
	}
	return out, nil
}

func commandOf(params core.Params) string {
	if s, ok := params[paramCommand].(string); ok {
		return s
	}
	return ""
}
