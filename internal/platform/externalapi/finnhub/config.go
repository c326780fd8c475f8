// Package finnhub provides a client for the Finnhub stock market API.
package finnhub

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultBaseURL is the public Finnhub REST endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey       string        `envconfig:"FINNHUB_API_KEY"`
	BaseURL      string        `envconfig:"FINNHUB_BASE_URL" default:"https://finnhub.io/api/v1"`
	Timeout      time.Duration `envconfig:"FINNHUB_HTTP_TIMEOUT" default:"10s"` // HTTP client timeout
	FetchTimeout time.Duration `envconfig:"FINNHUB_FETCH_TIMEOUT" default:"8s"` // per quote/profile fetch
	RateLimit    int           `envconfig:"FINNHUB_RATE_LIMIT" default:"60"`    // requests per minute
	ProfileTTL   time.Duration `envconfig:"FINNHUB_PROFILE_TTL" default:"1h"`
}

// LoadConfig loads Finnhub configuration from environment variables.
// A missing API key is not an error here; the client reports itself as unconfigured.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load finnhub config: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}
