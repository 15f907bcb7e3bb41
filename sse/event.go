package sse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LubyRuffy/deltabridge/chatapi"
)

var (
	// ErrMalformedFragment 表示 data 行的 JSON 无法解析，该行会被丢弃。
	ErrMalformedFragment = errors.New("malformed fragment")
	// ErrUnterminatedLine 表示流结束时 carry 中仍有未结束的行，该行会被丢弃。
	ErrUnterminatedLine = errors.New("unterminated line at end of stream")
)

// DecodeDelta 解析 data 行的 JSON，返回第一个 choice 的 delta 文本（可能为空）。
func DecodeDelta(payload []byte) (string, error) {
	var chunk chatapi.ChatChunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedFragment, err)
	}
	return chunk.DeltaText(), nil
}

// AppendDeltaEvent 把一个 message.delta 事件追加到 dst：
//
//	event: message.delta
//	data: {"text":"...","content":"...","type":"text"}
//	<空行>
func AppendDeltaEvent(dst []byte, text string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(chatapi.NewDeltaPayload(text)); err != nil {
		return dst
	}

	dst = append(dst, "event: "...)
	dst = append(dst, chatapi.DeltaEventName...)
	dst = append(dst, '\n')
	dst = append(dst, dataPrefix...)
	dst = append(dst, bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})...)
	dst = append(dst, '\n', '\n')
	return dst
}
