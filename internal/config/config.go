// Package config provides configuration loading and validation for the
// adapter.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "FLEETMIRROR"

// Store driver names.
const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

// Defaults applied when fields are left unset.
const (
	DefaultPollInterval = 60 * time.Second
	DefaultNamespace    = "fleetmirror.0"
	DefaultStorePath    = "./data/states.db"
	DefaultOpsAddress   = ":8090"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Vehicle   VehicleConfig    `yaml:"vehicle"`
	Poll      PollConfig       `yaml:"poll,omitempty"`
	Store     StoreConfig      `yaml:"store,omitempty"`
	Ops       OpsConfig        `yaml:"ops,omitempty"`
	Telemetry TelemetryConfig  `yaml:"telemetry,omitempty"`
	Reporting *ReportingConfig `yaml:"reporting,omitempty"`
}

// VehicleConfig identifies the remote telemetry endpoint and vehicle.
type VehicleConfig struct {
	// Endpoint is the base URL of the telemetry aggregation service.
	Endpoint string `yaml:"endpoint"`

	// Token authenticates requests via a URL query parameter.
	Token string `yaml:"token"`

	// VIN is the vehicle identification number to poll.
	VIN string `yaml:"vin"`
}

// PollConfig controls the fixed-interval scheduler.
type PollConfig struct {
	// Interval between poll cycles as a Go duration string, e.g. "60s".
	// Defaults to DefaultPollInterval.
	Interval string `yaml:"interval,omitempty"`
}

// StoreConfig selects and configures the host store backend.
type StoreConfig struct {
	// Driver is "sqlite" (default) or "memory".
	Driver string `yaml:"driver,omitempty"`

	// Path is the SQLite database location.
	Path string `yaml:"path,omitempty"`

	// Namespace is the adapter instance prefix for local entries.
	Namespace string `yaml:"namespace,omitempty"`
}

// OpsConfig configures the operational HTTP endpoint.
type OpsConfig struct {
	// Address to serve health, status, and metrics on.
	Address string `yaml:"address,omitempty"`
}

// TelemetryConfig toggles metric collection.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// ReportingConfig configures the optional external error-reporting webhook.
type ReportingConfig struct {
	// Webhook is the URL error events are posted to.
	Webhook string `yaml:"webhook"`
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetPollInterval returns the parsed poll interval. Call Validate first;
// an unparseable value falls back to the default here.
func (c *Config) GetPollInterval() time.Duration {
	if c.Poll.Interval == "" {
		return DefaultPollInterval
	}
	interval, err := time.ParseDuration(c.Poll.Interval)
	if err != nil {
		return DefaultPollInterval
	}
	return interval
}

func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverSQLite
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Store.Namespace == "" {
		c.Store.Namespace = DefaultNamespace
	}
	if c.Ops.Address == "" {
		c.Ops.Address = DefaultOpsAddress
	}
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Vehicle.Endpoint == "" {
		return fmt.Errorf("vehicle.endpoint is required")
	}
	parsed, err := url.Parse(c.Vehicle.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("vehicle.endpoint is not a valid URL: %s", c.Vehicle.Endpoint)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("vehicle.endpoint must use http or https, got %s", parsed.Scheme)
	}

	if c.Vehicle.Token == "" {
		return fmt.Errorf("vehicle.token is required")
	}
	if c.Vehicle.VIN == "" {
		return fmt.Errorf("vehicle.vin is required")
	}

	if c.Poll.Interval != "" {
		interval, err := time.ParseDuration(c.Poll.Interval)
		if err != nil {
			return fmt.Errorf("poll.interval is not a valid duration: %s", c.Poll.Interval)
		}
		if interval < time.Second {
			return fmt.Errorf("poll.interval must be at least 1s, got %s", interval)
		}
	}

	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q",
			StoreDriverSQLite, StoreDriverMemory, c.Store.Driver)
	}

	if c.Reporting != nil && c.Reporting.Webhook == "" {
		return fmt.Errorf("reporting.webhook is required when reporting is configured")
	}

	return nil
}
