package deltabridge

import "strings"

const (
	// DefaultUpstreamURL 是 chat.completions 流式接口的默认地址。
	DefaultUpstreamURL = "https://api.openai.com/v1/chat/completions"
	// DefaultModel 是未配置模型时使用的模型 ID。
	DefaultModel = "gpt-4o-mini"
	// DefaultInterceptURL 是 RoundTripper 拦截的哨兵端点，.invalid 保证它不会被真实解析。
	DefaultInterceptURL = "http://deltabridge.invalid/v1/chat"
	// DefaultListen 是 HTTP 服务默认监听地址。
	DefaultListen = "127.0.0.1:8080"
	// DefaultBasePath 是 HTTP 服务默认路由前缀。
	DefaultBasePath = "/v1"
	// DefaultUserAgent 用于上游请求的 User-Agent。
	DefaultUserAgent = "deltabridge"

	// ModelNamespace 是对外暴露的模型命名空间。
	ModelNamespace = "openai/"
)

// ConfiguredModel 描述 /models 输出中的一个模型。
type ConfiguredModel struct {
	ID   string
	Name string
}

// ListModels 返回对外暴露的模型列表，ID 使用 ModelNamespace。
func ListModels(modelID string) []ConfiguredModel {
	normalized := NormalizeModelID(modelID)
	if normalized == "" {
		normalized = DefaultModel
	}
	return []ConfiguredModel{{ID: ModelNamespace + normalized, Name: normalized}}
}

// NormalizeModelID 去掉 namespace 前缀，还原为上游需要的真实模型 ID。
func NormalizeModelID(modelID string) string {
	trimmed := strings.TrimSpace(modelID)
	return strings.TrimPrefix(trimmed, ModelNamespace)
}
