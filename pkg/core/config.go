package core

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ProductionPublicURL is the unauthenticated market data endpoint.
	ProductionPublicURL = "https://poloniex.com/public"
	// ProductionTradingURL is the signed trading endpoint.
	ProductionTradingURL = "https://poloniex.com/tradingApi"
)

// Environment variables consulted by LoadConfig.
const (
	EnvAPIKey     = "POLONIEX_API_KEY"
	EnvAPISecret  = "POLONIEX_API_SECRET"
	EnvPublicURL  = "POLONIEX_PUBLIC_URL"
	EnvTradingURL = "POLONIEX_TRADING_URL"
)

// Credentials holds API authentication credentials for the trading endpoint.
type Credentials struct {
	// APIKey is sent verbatim in the Key header.
	APIKey string `json:"key" yaml:"key"`
	// SecretKey signs the request body and is never transmitted.
	SecretKey string `json:"secret" yaml:"secret"`
}

// Valid reports whether both the key and the secret are present.
func (c *Credentials) Valid() bool {
	return c != nil && c.APIKey != "" && c.SecretKey != ""
}

// String masks the key and omits the secret.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Key:%s}", MaskKey(c.APIKey))
}

// Endpoints holds the two base URLs of the API.
// They are used as-is and not validated.
type Endpoints struct {
	Public  string `json:"public" yaml:"public"`
	Trading string `json:"trading" yaml:"trading"`
}

// Config contains all configuration options for a client.
type Config struct {
	Credentials *Credentials `json:"credentials,omitempty" yaml:"credentials"`
	Endpoints   Endpoints    `json:"endpoints" yaml:"endpoints"`

	// Timeout bounds a single HTTP round-trip.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"min=1ms"`
	// InsecureSkipVerify disables TLS certificate verification on both endpoints.
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	UserAgent          string `json:"user_agent" yaml:"user_agent"`

	// RateLimitRequests of zero disables client-side throttling.
	RateLimitRequests int           `json:"rate_limit_requests" yaml:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" yaml:"rate_limit_period" validate:"min=0"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled" yaml:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold" yaml:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold" yaml:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout" yaml:"circuit_breaker_timeout"`

	// CacheTTL above zero caches successful public replies for that long.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" validate:"min=0"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config pointing at the production endpoints.
// Default values: 10s timeout, 6 requests per second, TLS verification on,
// circuit breaker and cache off, info logging. Credentials are left empty.
func DefaultConfig() *Config {
	return &Config{
		Endpoints: Endpoints{
			Public:  ProductionPublicURL,
			Trading: ProductionTradingURL,
		},
		Timeout:   10 * time.Second,
		UserAgent: "poloniex-go/1.0",

		RateLimitRequests: 6,
		RateLimitPeriod:   time.Second,

		CircuitBreakerEnabled:          false,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,

		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the transport and infrastructure settings.
// Endpoints and credentials are deliberately left alone: a missing
// secret only fails the private call that needs it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RateLimitRequests > 0 && c.RateLimitPeriod <= 0 {
		return errors.New("RateLimitPeriod must be positive when rate limiting is enabled")
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(key, secret string) *Config {
	c.Credentials = &Credentials{APIKey: key, SecretKey: secret}
	return c
}

// WithEndpoints sets both base URLs and returns the config for chaining.
func (c *Config) WithEndpoints(public, trading string) *Config {
	c.Endpoints = Endpoints{Public: public, Trading: trading}
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithInsecureSkipVerify toggles TLS certificate verification and returns the config for chaining.
func (c *Config) WithInsecureSkipVerify(insecure bool) *Config {
	c.InsecureSkipVerify = insecure
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

// WithCache enables caching of public replies and returns the config for chaining.
func (c *Config) WithCache(ttl time.Duration) *Config {
	c.CacheTTL = ttl
	return c
}

// WithCircuitBreaker enables the circuit breaker and returns the config for chaining.
func (c *Config) WithCircuitBreaker(failThreshold, successThreshold int, timeout time.Duration) *Config {
	c.CircuitBreakerEnabled = true
	c.CircuitBreakerFailThreshold = failThreshold
	c.CircuitBreakerSuccessThreshold = successThreshold
	c.CircuitBreakerTimeout = timeout
	return c
}

// LoadConfig reads a YAML file on top of DefaultConfig and then applies
// environment overrides. An empty path skips the file. A .env file in the
// working directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// a missing .env is not an error
	_ = godotenv.Load()
	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return config, nil
}

func applyEnv(c *Config) {
	key, secret := os.Getenv(EnvAPIKey), os.Getenv(EnvAPISecret)
	if key != "" || secret != "" {
		if c.Credentials == nil {
			c.Credentials = &Credentials{}
		}
		if key != "" {
			c.Credentials.APIKey = key
		}
		if secret != "" {
			c.Credentials.SecretKey = secret
		}
	}
	if v := os.Getenv(EnvPublicURL); v != "" {
		c.Endpoints.Public = v
	}
	if v := os.Getenv(EnvTradingURL); v != "" {
		c.Endpoints.Trading = v
	}
}

// MaskKey hides all but the first and last four characters of a key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
