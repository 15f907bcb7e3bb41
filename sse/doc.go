// Package sse 实现 chat.completions SSE 到 message.delta SSE 的增量转换。
//
// 分层（自底向上）：
//   - LineSplitter：按 '\n' 切分字节块，未结束的尾部留到下一块（carry buffer）
//   - ClassifyLine：把一行归类为 data / 空行 / [DONE] 哨兵 / 其他
//   - DecodeDelta：解析 data 的 JSON，取第一个 choice 的 delta 文本
//   - AppendDeltaEvent：把文本编码为 "event: message.delta" 事件
//
// Decoder 组合前三层，Recoder 在其上完成重新编码，Reader 把 Recoder 包装成 io.ReadCloser。
// 以上类型都只服务一条响应流，不支持并发调用。
package sse
