// Package chatapi 提供上游 chat.completions 接口与下游 message.delta 事件流的数据结构与辅助函数。
//
// 该包只关注协议层：请求/响应 JSON 结构、SSE 事件常量、错误结构以及请求 ID。
// 流式转换逻辑在 sse 包中实现。
//
// 示例：构造一个上游请求
//
//	req := chatapi.ChatRequest{
//		Model:    "gpt-4o-mini",
//		Messages: []chatapi.ChatMessage{{Role: schema.User, Content: "hi"}},
//		Stream:   true,
//	}
package chatapi
