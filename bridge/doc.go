// Package bridge 把聊天 UI 的请求转发到 chat.completions 流式接口，并把响应实时转换为 message.delta 事件流。
//
// 该包对外暴露三种入口，它们共用同一个 Orchestrator：
//   - Transport：http.RoundTripper，只拦截发往 InterceptURL 的 POST，其余请求原样交给 Base
//   - Handlers：net/http 形式的 handlers（models/chat）
//   - RegisterGinRoutes：Gin 路由注册方法
//
// 翻译路径上的任何失败都只会以一种形式返回：HTTP 500 + {"error": "<message>"}。
//
// 使用示例：
//
//	// 拦截 fetch 风格的调用
//	tr, _ := bridge.NewTransport(bridge.Config{Credentials: auth.Static(key)}, http.DefaultTransport)
//	client := &http.Client{Transport: tr}
//	resp, _ := client.Post(deltabridge.DefaultInterceptURL, "application/json", strings.NewReader(`{"text":"hi"}`))
//
//	// gin
//	_ = bridge.RegisterGinRoutes(r, bridge.Config{
//		BasePath:    "/v1",
//		Credentials: auth.Static(key),
//	})
package bridge
