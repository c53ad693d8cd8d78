package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the environment variable prefix read by [LoadConfig].
const EnvPrefix = "API"

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "api-go-client"

// Config holds the connection settings for a [Client]. It is copied by [New]
// and never modified afterwards.
type Config struct {
	// BaseURL is the scheme and host of the API, e.g. https://api.example.com.
	// The /v2 version prefix is added by the client.
	BaseURL string `envconfig:"BASE_URL"`

	// AccessToken is sent as a bearer credential on every request.
	AccessToken string `envconfig:"ACCESS_TOKEN"`

	UserAgent string `envconfig:"USER_AGENT" default:"api-go-client"`

	// Verbose enables wire-level debug output through the configured RequestLogger.
	Verbose bool `envconfig:"VERBOSE" default:"false"`
}

// LoadConfig reads a [Config] from API_BASE_URL, API_ACCESS_TOKEN,
// API_USER_AGENT and API_VERBOSE. The base URL and access token are required.
func LoadConfig() (Config, error) {
	return LoadConfigWithOverrides(Config{})
}

// LoadConfigWithOverrides reads the environment like [LoadConfig] and then
// applies the non-empty fields of overrides; Verbose is applied when true.
// The required values may come from overrides instead of the environment,
// but a malformed environment value is always an error.
func LoadConfigWithOverrides(overrides Config) (Config, error) {
	// Required keys are checked after the overrides are applied.
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if overrides.BaseURL != "" {
		cfg.BaseURL = overrides.BaseURL
	}

	if overrides.AccessToken != "" {
		cfg.AccessToken = overrides.AccessToken
	}

	if overrides.UserAgent != "" {
		cfg.UserAgent = overrides.UserAgent
	}

	if overrides.Verbose {
		cfg.Verbose = true
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return Config{}, fmt.Errorf("parsing config: required key %s_BASE_URL missing value", EnvPrefix)
	}

	if strings.TrimSpace(cfg.AccessToken) == "" {
		return Config{}, fmt.Errorf("parsing config: required key %s_ACCESS_TOKEN missing value", EnvPrefix)
	}

	return cfg, nil
}

// Validate reports the first problem found in the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL must be set")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("base URL must include a host")
	}

	if strings.TrimSpace(c.AccessToken) == "" {
		return errors.New("access token must be set")
	}

	return nil
}

func (c Config) userAgent() string {
	if strings.TrimSpace(c.UserAgent) == "" {
		return DefaultUserAgent
	}

	return c.UserAgent
}
