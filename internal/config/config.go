// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fee-wizard/internal/errors"
	"fee-wizard/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Backend contains fee API configuration
	Backend BackendConfig `json:"backend" yaml:"backend"`

	// Session contains session store configuration
	Session SessionConfig `json:"session" yaml:"session"`

	// Catalog contains reference data configuration
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`

	// Telemetry contains tracing configuration
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address to listen on
	Address string `json:"address" yaml:"address"`

	// ReadTimeout for requests
	ReadTimeout Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout Duration `json:"write_timeout" yaml:"write_timeout"`

	// MaxBodySize limits request body size in bytes
	MaxBodySize int64 `json:"max_body_size" yaml:"max_body_size"`

	// RateLimit per client (requests per second), 0 disables limiting
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// RateBurst is the token bucket size per client
	RateBurst int `json:"rate_burst" yaml:"rate_burst"`

	// CookieName carries the session identifier
	CookieName string `json:"cookie_name" yaml:"cookie_name"`

	// SecureCookie sets the Secure attribute on the session cookie
	SecureCookie bool `json:"secure_cookie" yaml:"secure_cookie"`
}

// BackendConfig contains fee API settings
type BackendConfig struct {
	// BaseURL of the fee calculation API, e.g. http://localhost:8000/api/v1
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout bounds a single backend call
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// MaxConnsPerHost caps pooled connections to the backend
	MaxConnsPerHost int `json:"max_conns_per_host" yaml:"max_conns_per_host"`
}

// SessionConfig contains session store settings
type SessionConfig struct {
	// Backend is one of memory, file, sqlite, postgres, redis
	Backend string `json:"backend" yaml:"backend"`

	// DSN is the directory (file), database path (sqlite) or connection string (postgres)
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// RedisAddr is the redis host:port
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`

	// RedisPassword is the redis password
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`

	// RedisDB selects the redis database
	RedisDB int `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`

	// TTL is how long an idle session survives
	TTL Duration `json:"ttl" yaml:"ttl"`
}

// CatalogConfig contains reference data settings
type CatalogConfig struct {
	// Path to an HCL catalog file; empty uses the built-in catalog
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// TelemetryConfig contains OpenTelemetry settings
type TelemetryConfig struct {
	// Enabled turns on span export
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP/HTTP collector host:port
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Insecure disables TLS to the collector
	Insecure bool `json:"insecure" yaml:"insecure"`

	// ServiceName reported on every span
	ServiceName string `json:"service_name" yaml:"service_name"`

	// SampleRate between 0 and 1
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".fee-wizard", "sessions.db")

	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(60 * time.Second),
			MaxBodySize:  1 << 20,
			RateLimit:    10,
			RateBurst:    20,
			CookieName:   "fee_wizard_session",
		},
		Backend: BackendConfig{
			BaseURL:         "http://localhost:8000/api/v1",
			Timeout:         Duration(10 * time.Second),
			MaxConnsPerHost: 64,
		},
		Session: SessionConfig{
			Backend: "memory",
			DSN:     dbPath,
			TTL:     Duration(30 * time.Minute),
		},
		Logging: logging.DefaultConfig(),
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "localhost:4318",
			Insecure:    true,
			ServiceName: "fee-wizard",
			SampleRate:  1.0,
		},
	}
}

// Load loads configuration from a JSON or YAML file, chosen by extension.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "read config", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "parse config %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail late at runtime
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "memory", "redis":
	case "sqlite", "postgres", "file":
		if c.Session.DSN == "" {
			return errors.Newf(errors.TypeConfig, "session.dsn is required for %s", c.Session.Backend)
		}
	default:
		return errors.Newf(errors.TypeConfig, "unknown session backend: %q", c.Session.Backend)
	}
	if c.Backend.BaseURL == "" {
		return errors.New(errors.TypeConfig, "backend.base_url is required")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return errors.New(errors.TypeConfig, "telemetry.sample_rate must be between 0 and 1")
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
