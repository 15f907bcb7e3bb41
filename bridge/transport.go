package bridge

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/LubyRuffy/deltabridge/observability"
)

const maxInboundBodyBytes = 4 << 20

// Transport 拦截发往 InterceptURL 的 POST 请求并返回转换后的事件流，其余请求交给 Base。
type Transport struct {
	Base         http.RoundTripper
	orchestrator *Orchestrator
	target       *url.URL
}

var _ http.RoundTripper = (*Transport)(nil)

// NewTransport 创建拦截器。base 为 nil 时使用 http.DefaultTransport。
func NewTransport(cfg Config, base http.RoundTripper) (*Transport, error) {
	resolved, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	o, err := newOrchestrator(resolved)
	if err != nil {
		return nil, err
	}
	return &Transport{Base: base, orchestrator: o, target: resolved.InterceptURL}, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.intercepts(req) {
		return t.base().RoundTrip(req)
	}

	body, err := readRequestBody(req)
	if err != nil {
		observability.CallsTotal.WithLabelValues("transport", string(KindRequest)).Inc()
		return ErrorResponse(req, &CallError{Kind: KindRequest, Err: err}), nil
	}

	stream, err := t.orchestrator.Call(req.Context(), body)
	if err != nil {
		observability.CallsTotal.WithLabelValues("transport", string(errorKind(err))).Inc()
		return ErrorResponse(req, err), nil
	}
	observability.CallsTotal.WithLabelValues("transport", "ok").Inc()

	header := make(http.Header)
	header.Set("Content-Type", chatapi.EventStreamContentType)
	header.Set("X-Request-Id", stream.RequestID)
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", http.StatusOK, http.StatusText(http.StatusOK)),
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          stream.Body,
		ContentLength: -1,
		Request:       req,
	}, nil
}

func (t *Transport) intercepts(req *http.Request) bool {
	if req == nil || req.URL == nil || req.Method != http.MethodPost {
		return false
	}
	return strings.EqualFold(req.URL.Scheme, t.target.Scheme) &&
		strings.EqualFold(req.URL.Host, t.target.Host) &&
		cleanPath(req.URL.Path) == cleanPath(t.target.Path)
}

func cleanPath(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	return p
}

func readRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	defer req.Body.Close()
	body, err := io.ReadAll(io.LimitReader(req.Body, maxInboundBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > maxInboundBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxInboundBodyBytes)
	}
	return body, nil
}
