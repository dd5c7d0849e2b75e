package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds client settings sourced from the environment. Command-line
// flags may override individual fields after Load.
type Config struct {
	APIURL         string `env:"FESTIVO_API_URL" envDefault:"https://api.festivo.events"`
	TimeoutSeconds int    `env:"FESTIVO_TIMEOUT_SECONDS" envDefault:"30"`
	Home           string `env:"FESTIVO_HOME" envDefault:""`
	CacheDir       string `env:"FESTIVO_CACHE_DIR" envDefault:""`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("FESTIVO_API_URL is not a valid URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("FESTIVO_API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("FESTIVO_TIMEOUT_SECONDS must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
