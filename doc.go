// Package deltabridge 将 OpenAI 兼容 chat.completions 的流式 SSE 响应实时转换为
// 聊天 UI 使用的 message.delta 事件流，逐块处理而不缓存整个响应。
//
// 该仓库主要包含三类能力：
//  1. 流转换核心：sse 包提供按块喂入的 Recoder（行切分、事件解析、delta 映射、重新编码）
//  2. 调用编排：bridge 包提供 Orchestrator、http.RoundTripper 拦截器以及 Gin/net/http handlers
//  3. SDK：upstream 包提供可供 Eino/ADK 使用的 ChatModel 实现
package deltabridge
