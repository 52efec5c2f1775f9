package provider

import (
	"fmt"
	"os"
	"time"
)

// Config holds configuration for creating an LLM provider client.
// Common fields apply to all providers; use Options for provider-specific settings.
type Config struct {
	// Provider is the name of the provider to use.
	// Required. Values: "ollama"
	Provider string `json:"provider" yaml:"provider" toml:"provider"`

	// Model is the default model used when a Request leaves Model empty.
	Model string `json:"model" yaml:"model" toml:"model"`

	// BaseURL is the service root, e.g. "http://localhost:11434".
	// Takes precedence over Host.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// Host is a hostname, host:port, or scheme-qualified URL used to derive
	// BaseURL when BaseURL is empty.
	Host string `json:"host" yaml:"host" toml:"host"`

	// Timeout bounds each call. 0 uses the provider default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// SystemPrompt is the system message prepended to all requests.
	// Optional.
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt" toml:"system_prompt"`

	// Options holds provider-specific configuration.
	//
	// Ollama:
	//   - "keep_alive": string (how long the model stays loaded, e.g. "5m")
	//   - "format": string ("json") for JSON-mode output
	Options map[string]any `json:"options" yaml:"options" toml:"options"`
}

// DefaultConfig returns a Config with sensible defaults.
// Provider must still be set before use.
func DefaultConfig() Config {
	return Config{
		Timeout: 60 * time.Second,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the LLMCONNECT_ prefix and take precedence over
// existing values. Malformed values are ignored.
//
// Supported variables:
//   - LLMCONNECT_PROVIDER: Provider name
//   - LLMCONNECT_MODEL: Model name
//   - LLMCONNECT_BASE_URL: Service base URL
//   - LLMCONNECT_HOST: Service host (OLLAMA_HOST is honored first)
//   - LLMCONNECT_TIMEOUT: Timeout duration (e.g., "90s")
//   - LLMCONNECT_SYSTEM_PROMPT: System prompt
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("LLMCONNECT_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("LLMCONNECT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("LLMCONNECT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("LLMCONNECT_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("LLMCONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("LLMCONNECT_SYSTEM_PROMPT"); v != "" {
		c.SystemPrompt = v
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("%w: provider is required", ErrConfiguration)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0, got %v", ErrConfiguration, c.Timeout)
	}
	return nil
}

// WithProvider returns a copy of the config with the specified provider.
func (c Config) WithProvider(provider string) Config {
	c.Provider = provider
	return c
}

// WithModel returns a copy of the config with the specified model.
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithHost returns a copy of the config with the specified host.
func (c Config) WithHost(host string) Config {
	c.Host = host
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

// WithOption returns a copy of the config with the specified option set.
func (c Config) WithOption(key string, value any) Config {
	newOpts := make(map[string]any, len(c.Options)+1)
	for k, v := range c.Options {
		newOpts[k] = v
	}
	newOpts[key] = value
	c.Options = newOpts
	return c
}

// GetOption retrieves a provider-specific option by key.
func (c Config) GetOption(key string) any {
	if c.Options == nil {
		return nil
	}
	return c.Options[key]
}

// GetStringOption retrieves a string option, returning defaultVal if not set.
func (c Config) GetStringOption(key, defaultVal string) string {
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return defaultVal
}

// GetIntOption retrieves an int option, returning defaultVal if not set.
// Handles the numeric types produced by JSON, YAML and TOML decoding.
func (c Config) GetIntOption(key string, defaultVal int) int {
	switch v := c.Options[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultVal
}
