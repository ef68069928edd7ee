package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"poloniex/pkg/core"
)

const formContentType = "application/x-www-form-urlencoded"

// Client is a pooled resty client that never retries on its own.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
	mu     sync.RWMutex
	closed bool
}

type Config struct {
	Timeout            time.Duration     `validate:"min=1ms"`
	InsecureSkipVerify bool              `validate:"-"`
	UserAgent          string            `validate:"omitempty"`
	Headers            map[string]string `validate:"omitempty"`
}

// Response is the raw outcome of a round-trip that reached the server.
type Response struct {
	StatusCode int
	Body       []byte
}

type RequestOption func(*resty.Request)

func NewClient(config *Config, logger zerolog.Logger) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	if config.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	if config.UserAgent != "" {
		client.SetHeader("User-Agent", config.UserAgent)
	}
	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	c := &Client{
		client: client,
		logger: logger,
	}

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return c, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Get issues a GET to url with the pre-encoded query appended.
func (c *Client) Get(ctx context.Context, url, query string, opts ...RequestOption) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	if query != "" {
		url = url + "?" + query
	}

	req := c.client.R().SetContext(ctx)
	for _, opt := range opts {
		opt(req)
	}
	return c.finish(req.Get(url))
}

// PostForm issues a POST whose body is the exact bytes given.
func (c *Client) PostForm(ctx context.Context, url, body string, opts ...RequestOption) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", formContentType).
		SetBody(body)
	for _, opt := range opts {
		opt(req)
	}
	return c.finish(req.Post(url))
}

func (c *Client) finish(resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		c.logger.Error().Err(err).Msg("http request failed")
		return nil, fmt.Errorf("http request: %w", err)
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
	}, nil
}

func WithHeaders(headers map[string]string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeaders(headers)
	}
}
