package client

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultEndpoint is the production API endpoint.
	DefaultEndpoint = "https://api.elephantasm.com"

	// DefaultTimeout is the per-request deadline when none is configured.
	DefaultTimeout = 30 * time.Second
)

// Config holds SDK settings resolved from environment variables. Explicit
// options passed to New override these.
type Config struct {
	APIKey     string `env:"ELEPHANTASM_API_KEY"`
	AnimaID    string `env:"ELEPHANTASM_ANIMA_ID"`
	Endpoint   string `env:"ELEPHANTASM_ENDPOINT" envDefault:"https://api.elephantasm.com"`
	TimeoutSec int    `env:"ELEPHANTASM_TIMEOUT" envDefault:"30"`
}

// Timeout returns the configured request deadline as a duration. The
// environment variable holds whole seconds.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse environment configuration")
	}
	return &cfg, nil
}
