package bridge

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/LubyRuffy/deltabridge"
	"github.com/LubyRuffy/deltabridge/auth"
)

type Config struct {
	// BasePath 仅用于 Gin 注册路由时拼接路径，默认 "/v1"。
	BasePath string
	// UpstreamURL chat.completions 端点地址，默认 deltabridge.DefaultUpstreamURL。
	UpstreamURL string
	// Model 上游模型 ID，默认 deltabridge.DefaultModel；支持 "openai/" 前缀。
	Model string
	// HTTPClient 可选，用于上游请求，nil 时内部使用 &http.Client{}。
	HTTPClient *http.Client
	// Credentials 必填：每次调用时提供 API key。
	Credentials auth.Provider
	// InterceptURL Transport 拦截的端点，默认 deltabridge.DefaultInterceptURL。
	InterceptURL string
	// UserAgent 可选，上游请求的 User-Agent。
	UserAgent string
	// Logger 可选，nil 时使用 slog.Default()。
	Logger *slog.Logger
}

type resolvedConfig struct {
	BasePath     string
	UpstreamURL  string
	Model        string
	HTTPClient   *http.Client
	Credentials  auth.Provider
	InterceptURL *url.URL
	UserAgent    string
	Logger       *slog.Logger
}

func resolveConfig(cfg Config) (resolvedConfig, error) {
	if cfg.Credentials == nil {
		return resolvedConfig{}, fmt.Errorf("Credentials is required")
	}

	upstreamURL := strings.TrimSpace(cfg.UpstreamURL)
	if upstreamURL == "" {
		upstreamURL = deltabridge.DefaultUpstreamURL
	}

	model := deltabridge.NormalizeModelID(cfg.Model)
	if model == "" {
		model = deltabridge.DefaultModel
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	rawIntercept := strings.TrimSpace(cfg.InterceptURL)
	if rawIntercept == "" {
		rawIntercept = deltabridge.DefaultInterceptURL
	}
	intercept, err := url.Parse(rawIntercept)
	if err != nil || intercept.Scheme == "" || intercept.Host == "" {
		return resolvedConfig{}, fmt.Errorf("invalid InterceptURL: %q", rawIntercept)
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = deltabridge.DefaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return resolvedConfig{
		BasePath:     normalizeBasePath(cfg.BasePath),
		UpstreamURL:  upstreamURL,
		Model:        model,
		HTTPClient:   client,
		Credentials:  cfg.Credentials,
		InterceptURL: intercept,
		UserAgent:    ua,
		Logger:       logger,
	}, nil
}
