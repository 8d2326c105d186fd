// Package config provides configuration loading for plannerd.
//
// Configuration is loaded from a YAML file (~/.config/plannerd/config.yaml)
// and overridden by environment variables. Hardcoded defaults apply where
// neither source supplies a value.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete plannerd configuration.
type Config struct {
	Provider  ProviderConfig  `koanf:"provider"`
	Workspace WorkspaceConfig `koanf:"workspace"`
	History   HistoryConfig   `koanf:"history"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ProviderConfig holds chat-completion provider settings.
type ProviderConfig struct {
	// APIKey is the bearer credential for the completion endpoint.
	// An empty value means "configuration missing"; callers must check
	// IsConfigured before requesting a plan.
	APIKey Secret `koanf:"api_key"`

	// Endpoint is the chat-completions base URL. Empty selects the
	// provider default.
	Endpoint string `koanf:"endpoint"`

	// Model is the model identifier sent with every request.
	Model string `koanf:"model"`

	// MaxTokens is the output token ceiling for a completion.
	MaxTokens int `koanf:"max_tokens"`

	// Timeout bounds a single completion request end to end.
	Timeout Duration `koanf:"timeout"`

	// RateLimit is the client-side request rate in requests/second.
	// Zero disables throttling.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the throttle burst size. Ignored when RateLimit is zero.
	RateBurst int `koanf:"rate_burst"`
}

// WorkspaceConfig holds workspace snapshot settings.
type WorkspaceConfig struct {
	// Root is the workspace root path. Empty means "discover from the
	// current directory" (enclosing git repository, then cwd).
	Root string `koanf:"root"`
}

// HistoryConfig holds plan history storage settings.
type HistoryConfig struct {
	// Path is the history file location. Empty uses the default
	// (~/.local/share/plannerd/history.json).
	Path string `koanf:"path"`

	// MaxPlans bounds the number of retained plans per workspace.
	MaxPlans int `koanf:"max_plans"`
}

// ServerConfig holds the optional HTTP sidecar settings.
type ServerConfig struct {
	// Addr is the listen address for /healthz and /metrics.
	// Empty disables the sidecar.
	Addr string `koanf:"addr"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// Default returns the hardcoded default configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Endpoint:  "https://api.openai.com",
			Model:     "gpt-4o-mini",
			MaxTokens: 2000,
			Timeout:   Duration(60 * time.Second),
			RateLimit: 2,
			RateBurst: 4,
		},
		History: HistoryConfig{
			MaxPlans: 50,
		},
		Server: ServerConfig{
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// IsConfigured reports whether a credential is present. The planning
// pipeline must not be invoked without one.
func (c *Config) IsConfigured() bool {
	return c.Provider.APIKey.IsSet()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Provider.Model == "" {
		return fmt.Errorf("provider.model cannot be empty")
	}
	if c.Provider.MaxTokens <= 0 {
		return fmt.Errorf("provider.max_tokens must be positive, got %d", c.Provider.MaxTokens)
	}
	if c.Provider.Endpoint != "" {
		u, err := url.Parse(c.Provider.Endpoint)
		if err != nil {
			return fmt.Errorf("provider.endpoint is not a valid URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("provider.endpoint must use http or https, got %q", u.Scheme)
		}
	}
	if c.Provider.RateLimit < 0 {
		return fmt.Errorf("provider.rate_limit cannot be negative")
	}
	if c.History.MaxPlans <= 0 {
		return fmt.Errorf("history.max_plans must be positive, got %d", c.History.MaxPlans)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
