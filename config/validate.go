package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/LubyRuffy/deltabridge/auth"
	"github.com/LubyRuffy/deltabridge/logging"
)

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Listen) == "" {
		errs = append(errs, fmt.Errorf("listen is required"))
	}

	if err := checkAbsoluteURL(c.Upstream.URL); err != nil {
		errs = append(errs, fmt.Errorf("upstream.url: %w", err))
	}
	if strings.TrimSpace(c.Upstream.Model) == "" {
		errs = append(errs, fmt.Errorf("upstream.model is required"))
	}
	if c.Upstream.Timeout < 0 {
		errs = append(errs, fmt.Errorf("upstream.timeout must be >= 0, got %s", c.Upstream.Timeout))
	}

	switch auth.Source(strings.ToLower(strings.TrimSpace(c.Credential.Source))) {
	case auth.SourceStatic:
		if strings.TrimSpace(c.Credential.APIKey) == "" {
			errs = append(errs, fmt.Errorf("credential.api_key is required when credential.source is \"static\""))
		}
	case auth.SourceEnv, auth.SourceFile, auth.SourceAuto, "":
	default:
		errs = append(errs, fmt.Errorf("credential.source must be \"static\", \"env\", \"file\" or \"auto\", got %q", c.Credential.Source))
	}

	if err := checkAbsoluteURL(c.Intercept.URL); err != nil {
		errs = append(errs, fmt.Errorf("intercept.url: %w", err))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

func checkAbsoluteURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL, got %q", raw)
	}
	return nil
}

// CredentialProvider builds the auth.Provider described by the credential section.
func (c *Config) CredentialProvider() (auth.Provider, error) {
	return auth.NewProvider(c.Credential.Source, auth.Options{
		APIKey:  c.Credential.APIKey,
		KeyFile: c.Credential.File,
	})
}
