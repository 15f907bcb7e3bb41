package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LubyRuffy/deltabridge/auth"
)

const (
	EnvConfig      = "DELTABRIDGE_CONFIG"
	EnvUpstreamURL = "DELTABRIDGE_UPSTREAM_URL"
	EnvModel       = "DELTABRIDGE_MODEL"
	EnvListen      = "DELTABRIDGE_LISTEN"
)

// Load builds a Config in this order:
//  1. Defaults
//  2. YAML file (explicit path, then DELTABRIDGE_CONFIG)
//  3. DELTABRIDGE_* environment overrides
//  4. Validate
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if path := discoverConfigFile(configPath); path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv(EnvConfig)
}

// Fields absent from the file keep their current values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(auth.EnvAPIKey); v != "" {
		cfg.Credential.APIKey = v
	}
	if v := os.Getenv(EnvUpstreamURL); v != "" {
		cfg.Upstream.URL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Upstream.Model = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Listen = v
	}
}
