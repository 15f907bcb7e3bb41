package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/LubyRuffy/deltabridge/observability"
	"github.com/LubyRuffy/deltabridge/sse"
	"github.com/LubyRuffy/deltabridge/translate"
	"github.com/LubyRuffy/deltabridge/upstream"
)

// Orchestrator 执行一次完整的翻译调用：构造上游请求、发起流式调用、把响应体接到 sse.Reader。
// 每次调用拥有独立的 Recoder，Orchestrator 本身可并发使用。
type Orchestrator struct {
	client *upstream.Client
	model  string
	logger *slog.Logger
}

func NewOrchestrator(cfg Config) (*Orchestrator, error) {
	resolved, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	return newOrchestrator(resolved)
}

func newOrchestrator(resolved resolvedConfig) (*Orchestrator, error) {
	client, err := upstream.NewClient(upstream.Config{
		URL:         resolved.UpstreamURL,
		HTTPClient:  resolved.HTTPClient,
		Credentials: resolved.Credentials,
		UserAgent:   resolved.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	return &Orchestrator{client: client, model: resolved.Model, logger: resolved.Logger}, nil
}

// Model 返回上游模型 ID。
func (o *Orchestrator) Model() string {
	return o.model
}

// Stream 是一次成功调用的结果。Body 输出 message.delta 事件，调用方必须关闭它。
type Stream struct {
	RequestID string
	Body      io.ReadCloser
}

// Call 处理一个入站请求体。失败时返回 *CallError；成功时上游响应体的所有权转移给 Stream.Body。
func (o *Orchestrator) Call(ctx context.Context, body []byte) (*Stream, error) {
	requestID := chatapi.NewRequestID()
	logger := o.logger.With("request_id", requestID)

	payload, err := translate.Translate(o.model, body)
	if errors.Is(err, translate.ErrUnexpectedShape) {
		logger.Warn("unexpected inbound request shape, sending empty message list")
	}

	start := time.Now()
	resp, err := o.client.Stream(ctx, payload)
	observability.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		callErr := classifyUpstreamError(err)
		if callErr.Kind == KindUpstreamStatus {
			observability.UpstreamRequestsTotal.WithLabelValues(strconv.Itoa(callErr.StatusCode)).Inc()
		} else {
			observability.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		}
		logger.Warn("upstream call failed", "kind", callErr.Kind, "status", callErr.StatusCode, "error", err)
		return nil, callErr
	}
	observability.UpstreamRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	logger.Debug("upstream stream opened", "messages", len(payload.Messages), "model", payload.Model)

	reader := sse.NewReader(resp.Body, observability.NewStreamObserver(o.logger, requestID))
	observability.StreamsActive.Inc()
	return &Stream{
		RequestID: requestID,
		Body:      &trackedBody{Reader: reader, logger: logger},
	}, nil
}

func classifyUpstreamError(err error) *CallError {
	var statusErr *upstream.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &CallError{Kind: KindUpstreamStatus, StatusCode: statusErr.StatusCode, Err: err}
	case errors.Is(err, upstream.ErrCredential):
		return &CallError{Kind: KindCredential, Err: err}
	default:
		return &CallError{Kind: KindUpstreamTransport, Err: err}
	}
}

// trackedBody 在首次 Close 时更新活跃流指标并记录完成信号。
type trackedBody struct {
	*sse.Reader
	logger *slog.Logger
	once   sync.Once
}

func (b *trackedBody) Close() error {
	err := b.Reader.Close()
	b.once.Do(func() {
		observability.StreamsActive.Dec()
		rec := b.Reader.Recoder()
		b.logger.Debug("stream closed",
			"events", rec.Events(),
			"sentinel_seen", rec.SentinelSeen(),
			"state", rec.State().String(),
		)
	})
	return err
}
