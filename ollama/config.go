package ollama

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/randalmurphal/llmconnect/provider"
)

const (
	// DefaultPort is the port the service listens on out of the box.
	DefaultPort = 11434

	// DefaultTimeout bounds each call when no timeout is configured.
	DefaultTimeout = 60 * time.Second
)

// DefaultBaseURL is used when neither a base URL nor a host is configured.
var DefaultBaseURL = "http://localhost:" + strconv.Itoa(DefaultPort)

// Config holds Ollama client configuration.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:11434".
	// Takes precedence over Host. Trailing slashes are stripped.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// Host derives BaseURL when BaseURL is empty. Accepts "host",
	// "host:port", or a scheme-qualified URL.
	Host string `json:"host" yaml:"host" toml:"host"`

	// Timeout bounds each call from request start to fully read response.
	// Default: 60 seconds.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
// BaseURL is left empty so a Host set later still takes effect;
// WithDefaults resolves it.
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
	}
}

// WithDefaults returns a copy of the config with defaults applied for unset
// fields and BaseURL normalized.
func (c Config) WithDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	c.BaseURL = NormalizeBaseURL(c.BaseURL, c.Host)
	return c
}

// Validate checks if the configuration is valid.
// Call it on a config that has been through WithDefaults.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be > 0, got %v", provider.ErrConfiguration, c.Timeout)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base url %q: %v", provider.ErrConfiguration, c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url %q must use http or https", provider.ErrConfiguration, c.BaseURL)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("%w: base url %q has no host", provider.ErrConfiguration, c.BaseURL)
	}
	if strings.HasSuffix(u.Host, ":") {
		return fmt.Errorf("%w: base url %q has an empty port", provider.ErrConfiguration, c.BaseURL)
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("%w: base url %q has invalid port %q", provider.ErrConfiguration, c.BaseURL, p)
		}
	}
	return nil
}

// LoadFromEnv populates config fields from the environment using the same
// variables as provider.Config.LoadFromEnv: LLMCONNECT_BASE_URL,
// OLLAMA_HOST, LLMCONNECT_HOST and LLMCONNECT_TIMEOUT.
func (c *Config) LoadFromEnv() {
	pc := provider.Config{BaseURL: c.BaseURL, Host: c.Host, Timeout: c.Timeout}
	pc.LoadFromEnv()
	c.BaseURL = pc.BaseURL
	c.Host = pc.Host
	c.Timeout = pc.Timeout
}

// NormalizeBaseURL resolves the service root from an explicit base URL or a
// host. The result has no trailing slash. Normalization is idempotent:
// feeding the result back in as either argument returns it unchanged.
func NormalizeBaseURL(baseURL, host string) string {
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		return strings.TrimRight(baseURL, "/")
	}

	host = strings.TrimSpace(host)
	if host == "" {
		return DefaultBaseURL
	}
	if hasScheme(host) {
		return strings.TrimRight(host, "/")
	}

	host = strings.TrimRight(host, "/")
	if _, _, err := net.SplitHostPort(host); err == nil {
		return "http://" + host
	}
	return "http://" + net.JoinHostPort(strings.Trim(host, "[]"), strconv.Itoa(DefaultPort))
}

// hasScheme reports whether s starts with an http or https scheme.
// Schemes are case-insensitive.
func hasScheme(s string) bool {
	return hasPrefixFold(s, "http://") || hasPrefixFold(s, "https://")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the service root explicitly.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.cfg.BaseURL = baseURL }
}

// WithHost sets the host the base URL is derived from.
// It clears any base URL set earlier so the host takes effect.
func WithHost(host string) Option {
	return func(c *Client) {
		c.cfg.Host = host
		c.cfg.BaseURL = ""
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.cfg.Timeout = d }
}

// WithHTTPClient sets the HTTP client used for requests.
// Its Timeout field should be zero; the per-call timeout is applied via context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}
