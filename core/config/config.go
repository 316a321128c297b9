// Package config loads TabPipe configuration from a TOML file, with
// defaults suitable for the hosted parsing service. Command-line flags
// override file values; the API key may also come from the
// TABPIPE_API_KEY environment variable.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// EnvAPIKey is the environment variable consulted when no key is set in
// the config file or on the command line.
const EnvAPIKey = "TABPIPE_API_KEY"

// Config represents the application configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Output OutputConfig `toml:"output"`
}

// APIConfig configures the remote parsing service client.
type APIConfig struct {
	Key          string `toml:"key"`
	BaseURL      string `toml:"base_url" validate:"omitempty,url"`
	Timeout      string `toml:"timeout"`       // e.g. "60s"
	PollInterval string `toml:"poll_interval"` // e.g. "2s"
}

// OutputConfig configures where artifacts are written.
type OutputConfig struct {
	Dir string `toml:"dir"` // default: current working directory
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "https://api.tensorlake.ai/documents/v1",
			Timeout:      "60s",
			PollInterval: "2s",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and validates
// the result. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.API.Key == "" {
		cfg.API.Key = os.Getenv(EnvAPIKey)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// TimeoutDuration parses the configured client timeout, falling back to
// 60s on missing or invalid values.
func (c *APIConfig) TimeoutDuration() time.Duration {
	return parseDuration(c.Timeout, 60*time.Second)
}

// PollIntervalDuration parses the configured poll interval, falling back
// to 2s on missing or invalid values.
func (c *APIConfig) PollIntervalDuration() time.Duration {
	return parseDuration(c.PollInterval, 2*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
