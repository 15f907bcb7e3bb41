// Package translate 把聊天 UI 的请求体转换为上游 chat.completions 请求。
//
// 接受两种形态：
//
//	{"messages":[{"role":"user","content":"hi"}, {"isUser":false,"text":"hello"}]}
//	{"text":"hi"}
//
// 其他形态解码为 KindUnknown 并返回 ErrUnexpectedShape，BuildRequest 对其输出空消息列表。
package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/cloudwego/eino/schema"
)

// ErrUnexpectedShape 表示请求体既不是消息列表也不是单个 text。
var ErrUnexpectedShape = errors.New("unexpected inbound request shape")

// Kind 是入站请求的形态。
type Kind int

const (
	KindUnknown Kind = iota
	KindMessages
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindMessages:
		return "messages"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Message 是消息列表中的一项。空字符串与缺失等价。
type Message struct {
	Role    string
	IsUser  bool
	Content string
	Text    string
}

// Inbound 是两种入站形态的 tagged union，只有与 Kind 对应的字段有值。
type Inbound struct {
	Kind     Kind
	Messages []Message
	Text     string
}

type rawInbound struct {
	Messages json.RawMessage `json:"messages"`
	Text     json.RawMessage `json:"text"`
}

type rawMessage struct {
	Role    json.RawMessage `json:"role"`
	IsUser  json.RawMessage `json:"isUser"`
	Content json.RawMessage `json:"content"`
	Text    json.RawMessage `json:"text"`
}

// Decode 解析请求体。字段类型不符时按缺失处理，只有整体形态无法识别时才返回 ErrUnexpectedShape。
func Decode(body []byte) (Inbound, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Inbound{}, ErrUnexpectedShape
	}

	var raw rawInbound
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Inbound{}, ErrUnexpectedShape
	}

	if msgs := bytes.TrimSpace(raw.Messages); len(msgs) > 0 && msgs[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(msgs, &items); err == nil {
			messages := make([]Message, 0, len(items))
			for _, item := range items {
				messages = append(messages, decodeMessage(item))
			}
			return Inbound{Kind: KindMessages, Messages: messages}, nil
		}
	}

	if text, ok := rawString(raw.Text); ok && text != "" {
		return Inbound{Kind: KindText, Text: text}, nil
	}
	return Inbound{}, ErrUnexpectedShape
}

func decodeMessage(item json.RawMessage) Message {
	var raw rawMessage
	if err := json.Unmarshal(item, &raw); err != nil {
		return Message{}
	}
	role, _ := rawString(raw.Role)
	content, _ := rawString(raw.Content)
	text, _ := rawString(raw.Text)
	var isUser bool
	_ = json.Unmarshal(raw.IsUser, &isUser)
	return Message{Role: role, IsUser: isUser, Content: content, Text: text}
}

func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ResolveRole 返回消息的上游角色：合法的显式 role 优先，否则 isUser 为真时为 user，其余为 assistant。
func ResolveRole(m Message) schema.RoleType {
	switch strings.ToLower(strings.TrimSpace(m.Role)) {
	case string(schema.User):
		return schema.User
	case string(schema.Assistant):
		return schema.Assistant
	case string(schema.System):
		return schema.System
	}
	if m.IsUser {
		return schema.User
	}
	return schema.Assistant
}

// ResolveContent 返回消息内容：content 优先，否则 text，都没有时为空串。
func ResolveContent(m Message) string {
	if m.Content != "" {
		return m.Content
	}
	return m.Text
}

// BuildRequest 构造上游请求。消息顺序与数量与入站一致；KindUnknown 得到空消息列表。
func BuildRequest(model string, in Inbound) chatapi.ChatRequest {
	messages := make([]chatapi.ChatMessage, 0, len(in.Messages))
	switch in.Kind {
	case KindMessages:
		for _, m := range in.Messages {
			messages = append(messages, chatapi.ChatMessage{
				Role:    ResolveRole(m),
				Content: ResolveContent(m),
			})
		}
	case KindText:
		messages = append(messages, chatapi.ChatMessage{Role: schema.User, Content: in.Text})
	}
	return chatapi.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}
}

// Translate 组合 Decode 与 BuildRequest。形态无法识别时仍返回空消息列表的请求，同时返回 ErrUnexpectedShape。
func Translate(model string, body []byte) (chatapi.ChatRequest, error) {
	in, err := Decode(body)
	return BuildRequest(model, in), err
}
