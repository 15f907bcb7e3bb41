package chatapi

import (
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

const (
	// DeltaEventName 是下游事件流中每个增量事件的 event 名称。
	DeltaEventName = "message.delta"
	// DeltaPayloadType 是下游 payload 的 type 字段取值。
	DeltaPayloadType = "text"
	// DoneSentinel 是上游流结束的哨兵 data 内容。
	DoneSentinel = "[DONE]"
	// EventStreamContentType 是 SSE 响应的 Content-Type。
	EventStreamContentType = "text/event-stream"
)

// ChatMessage 上游请求中的单条消息。Role 只会是 user/assistant/system。
type ChatMessage struct {
	Role    schema.RoleType `json:"role"`
	Content string          `json:"content"`
}

// ChatRequest 上游 chat.completions 请求，构造后不再修改。
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// ChunkDelta 上游流式 chunk 中的 delta。Content 缺失与空串等价。
type ChunkDelta struct {
	Content string `json:"content,omitempty"`
}

// ChunkChoice 上游流式 chunk 中的 choice。
type ChunkChoice struct {
	Index int        `json:"index"`
	Delta ChunkDelta `json:"delta"`
}

// ChatChunk 上游流式响应中一行 data 的 JSON。
type ChatChunk struct {
	Choices []ChunkChoice `json:"choices"`
}

// DeltaText 返回第一个 choice 的 delta 文本，不存在时返回空串。
func (c ChatChunk) DeltaText() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}

// DeltaPayload 下游 message.delta 事件的 data。字段顺序即输出顺序。
type DeltaPayload struct {
	Text    string `json:"text"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// NewDeltaPayload 创建 text/content 相同的 payload。
func NewDeltaPayload(text string) DeltaPayload {
	return DeltaPayload{Text: text, Content: text, Type: DeltaPayloadType}
}

// ErrorBody 是翻译路径唯一的错误响应结构。
type ErrorBody struct {
	Error string `json:"error"`
}

// Model /models 输出中的模型信息。
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList /models 响应。
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// NewRequestID 生成单次调用的 ID。
func NewRequestID() string {
	return "dbr-" + uuid.New().String()[:8]
}
