package ollama

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/llmconnect/provider"
)

// fileConfig is the on-disk shape. Timeouts are written as duration
// strings ("90s") or as milliseconds; timeout_ms wins when both are set.
type fileConfig struct {
	BaseURL   string `json:"base_url" yaml:"base_url" toml:"base_url"`
	Host      string `json:"host" yaml:"host" toml:"host"`
	Timeout   string `json:"timeout" yaml:"timeout" toml:"timeout"`
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms" toml:"timeout_ms"`
}

// LoadConfigFile reads a client configuration from a .yaml, .yml, .toml or
// .json file. The result is not normalized; pass it to NewWithConfig.
//
// Example (YAML):
//
//	host: gpu-box
//	timeout: 90s
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &provider.FileError{Path: path, Err: err}
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".json":
		err = json.Unmarshal(data, &fc)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config file extension %q", provider.ErrConfiguration, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", provider.ErrConfiguration, path, err)
	}

	return fc.toConfig()
}

func (fc fileConfig) toConfig() (Config, error) {
	cfg := Config{
		BaseURL: fc.BaseURL,
		Host:    fc.Host,
	}

	switch {
	case fc.TimeoutMS < 0:
		return Config{}, fmt.Errorf("%w: timeout_ms must be > 0, got %d", provider.ErrConfiguration, fc.TimeoutMS)
	case fc.TimeoutMS > 0:
		cfg.Timeout = time.Duration(fc.TimeoutMS) * time.Millisecond
	case fc.Timeout != "":
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout: %v", provider.ErrConfiguration, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
