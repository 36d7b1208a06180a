package cli

import (
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/elephantasm/elephantasm-go/pkg/client"
	"github.com/elephantasm/elephantasm-go/pkg/utils/logging"
)

// config holds configuration values
type config struct {
	apiKey     string
	animaID    string
	endpoint   string
	timeoutSec int64
	logLevel   string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Elephantasm API key",
			Sources:     cli.EnvVars("ELEPHANTASM_API_KEY"),
			Destination: &cfg.apiKey,
		},
		&cli.StringFlag{
			Name:        "anima-id",
			Aliases:     []string{"a"},
			Usage:       "Default anima ID for operations",
			Sources:     cli.EnvVars("ELEPHANTASM_ANIMA_ID"),
			Destination: &cfg.animaID,
		},
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "API endpoint URL",
			Sources:     cli.EnvVars("ELEPHANTASM_ENDPOINT"),
			Destination: &cfg.endpoint,
		},
		&cli.IntFlag{
			Name:        "timeout",
			Usage:       "Request timeout in seconds",
			Sources:     cli.EnvVars("ELEPHANTASM_TIMEOUT"),
			Destination: &cfg.timeoutSec,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("ELEPHANTASM_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// setup applies logging configuration before a command runs
func (cfg *config) setup() {
	logging.SetDefault(logging.New(cfg.logLevel, os.Stderr))
}

// newClient creates a client from flags, falling back to environment values
func (cfg *config) newClient() (*client.Client, error) {
	var opts []client.Option
	if cfg.apiKey != "" {
		opts = append(opts, client.WithAPIKey(cfg.apiKey))
	}
	if cfg.animaID != "" {
		opts = append(opts, client.WithAnimaID(cfg.animaID))
	}
	if cfg.endpoint != "" {
		opts = append(opts, client.WithEndpoint(cfg.endpoint))
	}
	if cfg.timeoutSec > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(cfg.timeoutSec)*time.Second))
	}
	return client.New(opts...)
}
