// Package config loads deltabridge configuration from defaults, an optional
// YAML file and DELTABRIDGE_* environment variables.
package config

import (
	"time"

	"github.com/LubyRuffy/deltabridge"
)

// Config is the top-level configuration.
type Config struct {
	Listen     string           `yaml:"listen"`
	BasePath   string           `yaml:"base_path"`
	LogLevel   string           `yaml:"log_level"`
	LogJSON    bool             `yaml:"log_json"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Credential CredentialConfig `yaml:"credential"`
	Intercept  InterceptConfig  `yaml:"intercept"`
}

// UpstreamConfig describes the chat.completions endpoint.
type UpstreamConfig struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
	// Timeout bounds the whole upstream call including the streamed body. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// CredentialConfig selects where the upstream API key comes from.
type CredentialConfig struct {
	// Source is one of static, env, file, auto.
	Source string `yaml:"source"`
	APIKey string `yaml:"api_key"`
	File   string `yaml:"file"`
	// AllowUntrusted silences the literal-secret exposure warning.
	AllowUntrusted bool `yaml:"allow_untrusted"`
}

// InterceptConfig configures the RoundTripper sentinel endpoint.
type InterceptConfig struct {
	URL string `yaml:"url"`
}

// Defaults returns a Config populated with the named defaults.
func Defaults() Config {
	return Config{
		Listen:   deltabridge.DefaultListen,
		BasePath: deltabridge.DefaultBasePath,
		LogLevel: "info",
		Upstream: UpstreamConfig{
			URL:   deltabridge.DefaultUpstreamURL,
			Model: deltabridge.DefaultModel,
		},
		Credential: CredentialConfig{
			Source: "auto",
		},
		Intercept: InterceptConfig{
			URL: deltabridge.DefaultInterceptURL,
		},
	}
}
