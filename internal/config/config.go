// Package config loads runtime settings for the x12 CLI and API
// server. Settings resolve in precedence order: defaults, then an
// optional YAML config file, then X12_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "X12_"

// Config holds the runtime settings consumed by the CLI and the API
// server
type Config struct {
	// Host is the API server listening address
	Host string `koanf:"host"`
	// Port is the API server listening port
	Port int `koanf:"port"`
	// Pretty pretty-prints JSON output by default
	Pretty bool `koanf:"pretty"`
	// ExcludeEmpty drops absent fields from model output by default
	ExcludeEmpty bool `koanf:"exclude_empty"`
}

// defaults mirror the original service settings: listen on all
// interfaces, port 5000
func defaults() map[string]any {
	return map[string]any{
		"host":          "0.0.0.0",
		"port":          5000,
		"pretty":        false,
		"exclude_empty": false,
	}
}

// Load resolves the configuration. configFile may be empty, in which
// case only defaults and environment variables apply; a non-empty
// path must exist and parse as YAML.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
		if err := k.Load(
			file.Provider(configFile),
			yaml.Parser(),
		); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return &cfg, nil
}

// Addr returns the host:port listening address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
