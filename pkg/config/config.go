// Package config loads the gdelt.yaml configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "gdelt.yaml"

// Config holds all configuration for the gdelt CLI and server.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	// Codebook is a codebook TSV to load instead of the embedded one.
	Codebook string `yaml:"codebook"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig configures archive downloads.
type FetchConfig struct {
	BaseURL     string `yaml:"base_url"`
	Dir         string `yaml:"dir"`
	Translation bool   `yaml:"translation"`
	Concurrency int    `yaml:"concurrency"`
	Timeout     string `yaml:"timeout"`
}

// IngestConfig configures the ingest pipeline.
type IngestConfig struct {
	Workers       int    `yaml:"workers"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval string `yaml:"flush_interval"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "gdelt.db"},
		Fetch: FetchConfig{
			BaseURL:     "http://data.gdeltproject.org/gdeltv2/",
			Dir:         "data",
			Concurrency: 3,
			Timeout:     "5m",
		},
		Ingest: IngestConfig{
			Workers:       4,
			BatchSize:     100,
			FlushInterval: "100ms",
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: "5s",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file over the defaults. A missing
// file yields the defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GDELT_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("GDELT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GDELT_BASE_URL"); v != "" {
		c.Fetch.BaseURL = v
	}
	if v := os.Getenv("GDELT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GDELT_WORKERS: %q is not an integer", v)
		}
		c.Ingest.Workers = n
	}
	return nil
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// FetchTimeout returns the download timeout.
func (c *Config) FetchTimeout() time.Duration { return duration(c.Fetch.Timeout, 5*time.Minute) }

// FlushInterval returns the ingest flush interval.
func (c *Config) FlushInterval() time.Duration {
	return duration(c.Ingest.FlushInterval, 100*time.Millisecond)
}

// ReadHeaderTimeout returns the server read-header timeout.
func (c *Config) ReadHeaderTimeout() time.Duration {
	return duration(c.Server.ReadHeaderTimeout, 5*time.Second)
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path not configured (set database.path or GDELT_DB)")
	}
	if c.Ingest.Workers < 1 {
		return fmt.Errorf("ingest workers must be at least 1, got %d", c.Ingest.Workers)
	}
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest batch size must be at least 1, got %d", c.Ingest.BatchSize)
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch concurrency must be at least 1, got %d", c.Fetch.Concurrency)
	}
	for _, d := range []struct{ name, value string }{
		{"fetch.timeout", c.Fetch.Timeout},
		{"ingest.flush_interval", c.Ingest.FlushInterval},
		{"server.read_header_timeout", c.Server.ReadHeaderTimeout},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
	}
	valid := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	return nil
}
