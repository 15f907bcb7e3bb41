package auth

import (
	"context"
	"fmt"
	"strings"
)

// Options 是各来源需要的参数。
type Options struct {
	// APIKey 用于 static 来源。
	APIKey string
	// KeyFile 用于 file 来源，为空时使用 DefaultKeyFilePath。
	KeyFile string
}

// NewProvider 根据来源创建 Provider。
// source 允许：static/env/file/auto；空值在 APIKey 非空时按 static 处理，否则按 auto 处理。
func NewProvider(source string, opts Options) (Provider, error) {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "" {
		s = string(SourceAuto)
		if strings.TrimSpace(opts.APIKey) != "" {
			s = string(SourceStatic)
		}
	}
	switch Source(s) {
	case SourceStatic:
		return Static(opts.APIKey), nil
	case SourceEnv:
		return &envProvider{}, nil
	case SourceFile:
		return &fileProvider{path: opts.KeyFile}, nil
	case SourceAuto:
		providers := []Provider{&envProvider{}, &fileProvider{path: opts.KeyFile}}
		if strings.TrimSpace(opts.APIKey) != "" {
			providers = append([]Provider{Static(opts.APIKey)}, providers...)
		}
		return &autoProvider{providers: providers}, nil
	default:
		return nil, fmt.Errorf("unsupported credential source: %s", source)
	}
}

type autoProvider struct {
	providers []Provider
}

func (p *autoProvider) Credential(ctx context.Context) (string, error) {
	var lastErr error
	for _, provider := range p.providers {
		key, err := provider.Credential(ctx)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
		if err != nil {
			lastErr = err
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("no credential available")
}
