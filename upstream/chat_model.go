package upstream

import (
	"context"
	"fmt"
	"strings"

	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/LubyRuffy/deltabridge/sse"
	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModel 是基于上游流式接口的 Eino ChatModel 实现，delta 解析与 sse.Recoder 共用同一套解码层。
type ChatModel struct {
	client   *Client
	model    string
	observer sse.Observer
}

var _ einoModel.ToolCallingChatModel = (*ChatModel)(nil)

func NewChatModel(client *Client, model string) (*ChatModel, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &ChatModel{client: client, model: strings.TrimSpace(model)}, nil
}

// WithObserver 返回带有 observer 的副本。
func (m *ChatModel) WithObserver(observer sse.Observer) *ChatModel {
	cloned := *m
	cloned.observer = observer
	return &cloned
}

// WithTools 上游请求不携带工具定义，只接受空列表。
func (m *ChatModel) WithTools(tools []*schema.ToolInfo) (einoModel.ToolCallingChatModel, error) {
	if len(tools) > 0 {
		return nil, fmt.Errorf("tools are not supported")
	}
	cloned := *m
	return &cloned, nil
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einoModel.Option) (*schema.Message, error) {
	var content strings.Builder
	if err := m.stream(ctx, input, func(delta string) error {
		content.WriteString(delta)
		return nil
	}); err != nil {
		return nil, err
	}
	return schema.AssistantMessage(content.String(), nil), nil
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, _ ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	resp, err := m.client.Stream(ctx, m.buildRequest(input))
	if err != nil {
		return nil, err
	}

	sr, sw := schema.Pipe[*schema.Message](64)
	go func() {
		defer sw.Close()
		defer resp.Body.Close()
		err := sse.ScanDeltas(ctx, resp.Body, m.observer, func(delta string) error {
			if closed := sw.Send(&schema.Message{Role: schema.Assistant, Content: delta}, nil); closed {
				return context.Canceled
			}
			return nil
		})
		if err != nil {
			sw.Send(nil, err)
		}
	}()
	return sr, nil
}

func (m *ChatModel) stream(ctx context.Context, input []*schema.Message, onDelta func(string) error) error {
	resp, err := m.client.Stream(ctx, m.buildRequest(input))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return sse.ScanDeltas(ctx, resp.Body, m.observer, onDelta)
}

func (m *ChatModel) buildRequest(input []*schema.Message) chatapi.ChatRequest {
	messages := make([]chatapi.ChatMessage, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.User, schema.Assistant, schema.System:
			messages = append(messages, chatapi.ChatMessage{Role: msg.Role, Content: resolveMessageContent(msg)})
		}
	}
	return chatapi.ChatRequest{Model: m.model, Messages: messages, Stream: true}
}

func resolveMessageContent(msg *schema.Message) string {
	if msg.Content != "" {
		return msg.Content
	}
	if len(msg.UserInputMultiContent) > 0 {
		var builder strings.Builder
		for _, part := range msg.UserInputMultiContent {
			if part.Type == schema.ChatMessagePartTypeText {
				builder.WriteString(part.Text)
			}
		}
		return builder.String()
	}
	return ""
}
