// Package upstream 封装对 OpenAI 兼容 chat.completions 流式接口的调用。
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/LubyRuffy/deltabridge"
	"github.com/LubyRuffy/deltabridge/auth"
	"github.com/LubyRuffy/deltabridge/chatapi"
)

const maxErrorBodyBytes = 8 << 10

// ErrCredential 表示无法从 auth.Provider 取得 API key。
var ErrCredential = errors.New("credential not available")

type Config struct {
	// URL chat.completions 端点地址，默认 deltabridge.DefaultUpstreamURL。
	URL string
	// HTTPClient 可选，nil 时使用 &http.Client{}。
	HTTPClient *http.Client
	// Credentials 必填，每次调用时解析 API key。
	Credentials auth.Provider
	// UserAgent 可选，默认 deltabridge.DefaultUserAgent。
	UserAgent string
}

// Client 发起流式请求并把响应体原样交给调用方。
type Client struct {
	url         string
	httpClient  *http.Client
	credentials auth.Provider
	userAgent   string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credentials provider is required")
	}
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = deltabridge.DefaultUpstreamURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = deltabridge.DefaultUserAgent
	}
	return &Client{url: url, httpClient: client, credentials: cfg.Credentials, userAgent: ua}, nil
}

// URL 返回上游端点地址。
func (c *Client) URL() string {
	return c.url
}

// StatusError 表示上游返回了非 2xx 状态码。
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Body)
}

// Stream 发送请求并返回响应。成功时调用方负责关闭 resp.Body；
// 非 2xx 时读取（最多 8KiB）错误体并返回 *StatusError。
func (c *Client) Stream(ctx context.Context, payload chatapi.ChatRequest) (*http.Response, error) {
	apiKey, err := c.credentials.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredential, err)
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", chatapi.EventStreamContentType)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}
